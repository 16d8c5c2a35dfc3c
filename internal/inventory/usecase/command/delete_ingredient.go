package command

import (
	"context"

	"github.com/tair/population/internal/inventory/domain"
)

// DeleteIngredientCommand represents the command to delete an ingredient
type DeleteIngredientCommand struct {
	ID uint
}

// DeleteIngredientHandler handles delete ingredient command
type DeleteIngredientHandler struct {
	repo domain.IngredientRepository
}

func NewDeleteIngredientHandler(repo domain.IngredientRepository) *DeleteIngredientHandler {
	return &DeleteIngredientHandler{repo: repo}
}

// Handle deletes the ingredient; recipe links referencing it go with it.
func (h *DeleteIngredientHandler) Handle(ctx context.Context, cmd DeleteIngredientCommand) error {
	return h.repo.Delete(ctx, cmd.ID)
}
