package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/population/internal/inventory/delivery/http"
	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/internal/inventory/repository"
	"github.com/tair/population/internal/inventory/usecase/command"
	"github.com/tair/population/internal/inventory/usecase/query"
)

// ProvideIngredientRepository provides the traced ingredient repository
func ProvideIngredientRepository(db *gorm.DB) domain.IngredientRepository {
	return repository.NewTracingIngredientRepository(repository.NewGormIngredientRepository(db))
}

// ProvideItemRepository provides the traced item repository
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewTracingItemRepository(repository.NewGormItemRepository(db))
}

// ProvideCommandHandlers provides all command handlers
func ProvideCommandHandlers(
	ingredients domain.IngredientRepository,
	items domain.ItemRepository,
	publisher domain.EventPublisher,
) *http.CommandHandlers {
	return &http.CommandHandlers{
		CreateIngredient: command.NewCreateIngredientHandler(ingredients, publisher),
		UpdateIngredient: command.NewUpdateIngredientHandler(ingredients, publisher),
		DeleteIngredient: command.NewDeleteIngredientHandler(ingredients),
		CreateItem:       command.NewCreateItemHandler(items, publisher),
		UpdateItem:       command.NewUpdateItemHandler(items, publisher),
		DeleteItem:       command.NewDeleteItemHandler(items, publisher),
	}
}

// ProvideQueryHandlers provides all query handlers
func ProvideQueryHandlers(ingredients domain.IngredientRepository, items domain.ItemRepository) *http.QueryHandlers {
	return &http.QueryHandlers{
		GetIngredient:   query.NewGetIngredientHandler(ingredients),
		ListIngredients: query.NewListIngredientsHandler(ingredients),
		LowStock:        query.NewLowStockHandler(ingredients),
		GetItem:         query.NewGetItemHandler(items),
		ListItems:       query.NewListItemsHandler(items),
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideIngredientRepository,
	ProvideItemRepository,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	ProvideCommandHandlers,
	ProvideQueryHandlers,
)
