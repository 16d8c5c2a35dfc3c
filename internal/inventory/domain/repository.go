package domain

import "context"

// IngredientRepository defines the contract for ingredient data access.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *Ingredient) error
	FindByID(ctx context.Context, id uint) (*Ingredient, error)
	// FindAll returns every ingredient ordered by name.
	FindAll(ctx context.Context) ([]Ingredient, error)
	Update(ctx context.Context, ingredient *Ingredient) error
	// Delete removes the ingredient and every recipe link that references it.
	Delete(ctx context.Context, id uint) error
}

// ItemRepository defines the contract for item data access. Items are always
// returned with their recipe links and the linked ingredients loaded.
type ItemRepository interface {
	// Create stores the item and its recipe in one transaction.
	Create(ctx context.Context, item *Item, recipe []IngredientRequirement) error
	FindByID(ctx context.Context, id uint) (*Item, error)
	// FindAll returns every item ordered by category, then name.
	FindAll(ctx context.Context) ([]Item, error)
	// Update loads the item, applies mutate and saves it. When recipe is set,
	// the existing links are replaced by it. Everything runs in one transaction.
	Update(ctx context.Context, id uint, mutate func(*Item) error, recipe Optional[[]IngredientRequirement]) (*Item, error)
	// Delete removes the item and its recipe links.
	Delete(ctx context.Context, id uint) error
}
