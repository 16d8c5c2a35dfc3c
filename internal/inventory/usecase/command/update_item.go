package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
)

// UpdateItemCommand is a partial update of an item. Recipe follows a
// tri-state contract: unset keeps the current links, set (even to an empty
// slice) replaces them all.
type UpdateItemCommand struct {
	ID          uint
	Name        *string
	Description domain.Optional[*string]
	Category    *domain.Category
	Price       *decimal.Decimal
	IsAvailable *bool
	Recipe      domain.Optional[[]domain.IngredientRequirement]
}

func (cmd UpdateItemCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	if cmd.Name != nil {
		domain.ValidateName(errs, "name", *cmd.Name)
	}
	if cmd.Category != nil {
		validateItemCategory(errs, *cmd.Category)
	}
	if cmd.Price != nil {
		domain.ValidateDecimal(errs, "price", *cmd.Price, true)
	}
	if reqs, ok := cmd.Recipe.Get(); ok {
		validateRecipe(errs, reqs)
	}
	return errs
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

func NewUpdateItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo, publisher: publisher}
}

// Handle applies the field changes and the optional recipe replacement in a
// single transaction.
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Item, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	item, err := h.repo.Update(ctx, cmd.ID, cmd.apply, cmd.Recipe)
	if err != nil {
		return nil, err
	}

	notifyItemChanged(ctx, h.publisher, item.ID, domain.ItemUpdated)
	return item, nil
}

func (cmd UpdateItemCommand) apply(item *domain.Item) error {
	if cmd.Name != nil {
		item.Name = *cmd.Name
	}
	if description, ok := cmd.Description.Get(); ok {
		item.Description = description
	}
	if cmd.Category != nil {
		item.Category = *cmd.Category
	}
	if cmd.Price != nil {
		item.Price = *cmd.Price
	}
	if cmd.IsAvailable != nil {
		item.IsAvailable = *cmd.IsAvailable
	}
	return nil
}
