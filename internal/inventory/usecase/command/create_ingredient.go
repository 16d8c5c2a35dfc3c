package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
)

// CreateIngredientCommand represents the command to create an ingredient.
// Nil numeric fields default to zero and an empty unit defaults to pcs.
type CreateIngredientCommand struct {
	Name          string
	Description   *string
	Quantity      *decimal.Decimal
	Unit          domain.Unit
	MinStockLevel *decimal.Decimal
	CostPerUnit   *decimal.Decimal
}

// Validate checks the command without touching storage.
func (cmd CreateIngredientCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	domain.ValidateName(errs, "name", cmd.Name)
	if cmd.Unit != "" && !cmd.Unit.Valid() {
		errs.Add("unit", fmt.Sprintf("\"%s\" is not a valid choice.", cmd.Unit))
	}
	validateStockFields(errs, cmd.Quantity, cmd.MinStockLevel, cmd.CostPerUnit)
	return errs
}

// CreateIngredientHandler handles create ingredient command
type CreateIngredientHandler struct {
	repo      domain.IngredientRepository
	publisher domain.EventPublisher
}

func NewCreateIngredientHandler(repo domain.IngredientRepository, publisher domain.EventPublisher) *CreateIngredientHandler {
	return &CreateIngredientHandler{repo: repo, publisher: publisher}
}

// Handle executes the create ingredient command
func (h *CreateIngredientHandler) Handle(ctx context.Context, cmd CreateIngredientCommand) (*domain.Ingredient, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	unit := cmd.Unit
	if unit == "" {
		unit = domain.DefaultUnit
	}

	ingredient := &domain.Ingredient{
		Name:          cmd.Name,
		Description:   cmd.Description,
		Quantity:      orZero(cmd.Quantity),
		Unit:          unit,
		MinStockLevel: orZero(cmd.MinStockLevel),
		CostPerUnit:   orZero(cmd.CostPerUnit),
	}

	if err := h.repo.Create(ctx, ingredient); err != nil {
		return nil, err
	}

	notifyLowStock(ctx, h.publisher, *ingredient)
	return ingredient, nil
}
