package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
)

// CreateItemCommand represents the command to create an item together with
// its recipe. An empty category defaults to beverage and a nil IsAvailable
// to true.
type CreateItemCommand struct {
	Name        string
	Description *string
	Category    domain.Category
	Price       *decimal.Decimal
	IsAvailable *bool
	Recipe      []domain.IngredientRequirement
}

func (cmd CreateItemCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	domain.ValidateName(errs, "name", cmd.Name)
	if cmd.Category != "" {
		validateItemCategory(errs, cmd.Category)
	}
	if cmd.Price == nil {
		errs.Add("price", "This field is required.")
	} else {
		domain.ValidateDecimal(errs, "price", *cmd.Price, true)
	}
	validateRecipe(errs, cmd.Recipe)
	return errs
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

func NewCreateItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *CreateItemHandler {
	return &CreateItemHandler{repo: repo, publisher: publisher}
}

// Handle stores the item and all of its recipe links atomically: if any link
// cannot be created, neither the item nor any link is persisted.
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	category := cmd.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	available := true
	if cmd.IsAvailable != nil {
		available = *cmd.IsAvailable
	}

	item := &domain.Item{
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    category,
		Price:       *cmd.Price,
		IsAvailable: available,
	}

	if err := h.repo.Create(ctx, item, cmd.Recipe); err != nil {
		return nil, err
	}

	notifyItemChanged(ctx, h.publisher, item.ID, domain.ItemCreated)
	return item, nil
}
