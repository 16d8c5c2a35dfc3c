package query

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// GetItemQuery represents the query to get an item with its recipe
type GetItemQuery struct {
	ID uint
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.ItemRepository
}

func NewGetItemHandler(repo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

func (h *GetItemHandler) Handle(ctx context.Context, q GetItemQuery) (*domain.Item, error) {
	return h.repo.FindByID(ctx, q.ID)
}
