package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/logger"
)

func validateStockFields(errs *apperror.ValidationError, quantity, minStock, cost *decimal.Decimal) {
	if quantity != nil {
		domain.ValidateDecimal(errs, "quantity", *quantity, true)
	}
	if minStock != nil {
		domain.ValidateDecimal(errs, "min_stock_level", *minStock, true)
	}
	if cost != nil {
		domain.ValidateDecimal(errs, "cost_per_unit", *cost, false)
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func notifyLowStock(ctx context.Context, publisher domain.EventPublisher, ingredient domain.Ingredient) {
	if publisher == nil || !ingredient.IsLowStock() {
		return
	}
	if err := publisher.PublishLowStock(ctx, ingredient); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("ingredient_id", ingredient.ID).
			Msg("Failed to publish low stock event")
	}
}

// validateRecipe checks the shape of submitted requirements. Whether the
// referenced ingredients exist is checked inside the write transaction.
func validateRecipe(errs *apperror.ValidationError, reqs []domain.IngredientRequirement) {
	seen := make(map[uint]int, len(reqs))
	for i, req := range reqs {
		prefix := fmt.Sprintf("%s.%d.", domain.RecipeField, i)
		if req.IngredientID == 0 {
			errs.Add(prefix+"ingredient_id", "This field is required.")
		} else if first, dup := seen[req.IngredientID]; dup {
			errs.Add(prefix+"ingredient_id", fmt.Sprintf("Duplicate of entry %d; each ingredient may appear only once.", first))
		} else {
			seen[req.IngredientID] = i
		}
		domain.ValidateDecimal(errs, prefix+"quantity_required", req.QuantityRequired, true)
	}
}

func validateItemCategory(errs *apperror.ValidationError, category domain.Category) {
	if !category.Valid() {
		errs.Add("category", fmt.Sprintf("\"%s\" is not a valid choice.", category))
	}
}

func notifyItemChanged(ctx context.Context, publisher domain.EventPublisher, itemID uint, change string) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishItemChanged(ctx, itemID, change); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("item_id", itemID).
			Str("change", change).
			Msg("Failed to publish item change event")
	}
}
