package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
)

// UpdateIngredientCommand is a partial update: only supplied fields change.
type UpdateIngredientCommand struct {
	ID            uint
	Name          *string
	Description   domain.Optional[*string]
	Quantity      *decimal.Decimal
	Unit          *domain.Unit
	MinStockLevel *decimal.Decimal
	CostPerUnit   *decimal.Decimal
}

func (cmd UpdateIngredientCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	if cmd.Name != nil {
		domain.ValidateName(errs, "name", *cmd.Name)
	}
	if cmd.Unit != nil && !cmd.Unit.Valid() {
		errs.Add("unit", fmt.Sprintf("\"%s\" is not a valid choice.", *cmd.Unit))
	}
	validateStockFields(errs, cmd.Quantity, cmd.MinStockLevel, cmd.CostPerUnit)
	return errs
}

// UpdateIngredientHandler handles update ingredient command
type UpdateIngredientHandler struct {
	repo      domain.IngredientRepository
	publisher domain.EventPublisher
}

func NewUpdateIngredientHandler(repo domain.IngredientRepository, publisher domain.EventPublisher) *UpdateIngredientHandler {
	return &UpdateIngredientHandler{repo: repo, publisher: publisher}
}

// Handle executes the update ingredient command
func (h *UpdateIngredientHandler) Handle(ctx context.Context, cmd UpdateIngredientCommand) (*domain.Ingredient, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	ingredient, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		ingredient.Name = *cmd.Name
	}
	if description, ok := cmd.Description.Get(); ok {
		ingredient.Description = description
	}
	if cmd.Quantity != nil {
		ingredient.Quantity = *cmd.Quantity
	}
	if cmd.Unit != nil {
		ingredient.Unit = *cmd.Unit
	}
	if cmd.MinStockLevel != nil {
		ingredient.MinStockLevel = *cmd.MinStockLevel
	}
	if cmd.CostPerUnit != nil {
		ingredient.CostPerUnit = *cmd.CostPerUnit
	}

	if err := h.repo.Update(ctx, ingredient); err != nil {
		return nil, err
	}

	notifyLowStock(ctx, h.publisher, *ingredient)
	return ingredient, nil
}
