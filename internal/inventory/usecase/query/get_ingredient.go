package query

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// GetIngredientQuery represents the query to get an ingredient
type GetIngredientQuery struct {
	ID uint
}

// GetIngredientHandler handles get ingredient query
type GetIngredientHandler struct {
	repo domain.IngredientRepository
}

func NewGetIngredientHandler(repo domain.IngredientRepository) *GetIngredientHandler {
	return &GetIngredientHandler{repo: repo}
}

func (h *GetIngredientHandler) Handle(ctx context.Context, q GetIngredientQuery) (*domain.Ingredient, error) {
	return h.repo.FindByID(ctx, q.ID)
}
