package query

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// ListIngredientsHandler returns all ingredients ordered by name.
type ListIngredientsHandler struct {
	repo domain.IngredientRepository
}

func NewListIngredientsHandler(repo domain.IngredientRepository) *ListIngredientsHandler {
	return &ListIngredientsHandler{repo: repo}
}

func (h *ListIngredientsHandler) Handle(ctx context.Context) ([]domain.Ingredient, error) {
	return h.repo.FindAll(ctx)
}
