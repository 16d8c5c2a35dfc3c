package query

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// LowStockHandler lists ingredients at or below their minimum stock level.
//
// It reads every ingredient and filters in process. A store-side predicate
// (WHERE quantity <= min_stock_level) is the obvious replacement once the
// ingredient table grows large.
type LowStockHandler struct {
	repo domain.IngredientRepository
}

func NewLowStockHandler(repo domain.IngredientRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

func (h *LowStockHandler) Handle(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterLowStock(ingredients), nil
}
