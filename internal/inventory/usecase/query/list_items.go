package query

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// ListItemsHandler returns all items ordered by category, then name.
type ListItemsHandler struct {
	repo domain.ItemRepository
}

func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

func (h *ListItemsHandler) Handle(ctx context.Context) ([]domain.Item, error) {
	return h.repo.FindAll(ctx)
}
