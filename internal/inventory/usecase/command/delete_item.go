package command

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	ID uint
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

func NewDeleteItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo, publisher: publisher}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}

	notifyItemChanged(ctx, h.publisher, cmd.ID, domain.ItemDeleted)
	return nil
}
