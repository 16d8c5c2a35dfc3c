package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/database"
)

// GormItemRepository implements domain.ItemRepository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// withRecipe preloads recipe links in insertion order together with the
// ingredient each link points at.
func withRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Recipe", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_ingredients.id ASC")
		}).
		Preload("Recipe.Ingredient")
}

func (r *GormItemRepository) Create(ctx context.Context, item *domain.Item, recipe []domain.IngredientRequirement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item.Recipe = nil
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		if err := replaceRecipe(tx, item.ID, recipe, false); err != nil {
			return err
		}

		return loadItem(tx, item, item.ID)
	})
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	if err := loadItem(r.db.WithContext(ctx), &item, id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	items := make([]domain.Item, 0)
	err := withRecipe(r.db.WithContext(ctx)).
		Order("category ASC").
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *GormItemRepository) Update(
	ctx context.Context,
	id uint,
	mutate func(*domain.Item) error,
	recipe domain.Optional[[]domain.IngredientRequirement],
) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if database.IsNotFound(err) {
				return apperror.NotFound("Item", id)
			}
			return fmt.Errorf("failed to find item: %w", err)
		}

		if err := mutate(&item); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		if reqs, ok := recipe.Get(); ok {
			if err := replaceRecipe(tx, item.ID, reqs, true); err != nil {
				return err
			}
		}

		return loadItem(tx, &item, id)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.ItemIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe links: %w", err)
		}

		result := tx.Delete(&domain.Item{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete item: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("Item", id)
		}
		return nil
	})
}

func loadItem(db *gorm.DB, item *domain.Item, id uint) error {
	*item = domain.Item{}
	if err := withRecipe(db).First(item, id).Error; err != nil {
		if database.IsNotFound(err) {
			return apperror.NotFound("Item", id)
		}
		return fmt.Errorf("failed to find item: %w", err)
	}
	return nil
}

// replaceRecipe installs reqs as the recipe of itemID inside tx, optionally
// clearing the previous links first. Any error must abort tx.
func replaceRecipe(tx *gorm.DB, itemID uint, reqs []domain.IngredientRequirement, clearExisting bool) error {
	if clearExisting {
		if err := tx.Where("item_id = ?", itemID).Delete(&domain.ItemIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe: %w", err)
		}
	}
	if len(reqs) == 0 {
		return nil
	}

	if err := checkIngredientsExist(tx, reqs); err != nil {
		return err
	}

	links := domain.RecipeLinks(itemID, reqs)
	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.FieldError(domain.RecipeField, "Each ingredient may appear only once in a recipe.")
		}
		return fmt.Errorf("failed to create recipe links: %w", err)
	}
	return nil
}

func checkIngredientsExist(tx *gorm.DB, reqs []domain.IngredientRequirement) error {
	ids := make([]uint, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.IngredientID)
	}

	var found []uint
	if err := tx.Model(&domain.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("failed to look up ingredients: %w", err)
	}

	exists := make(map[uint]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}

	errs := apperror.NewValidationError()
	for i, req := range reqs {
		if !exists[req.IngredientID] {
			errs.Add(
				fmt.Sprintf("%s.%d.ingredient_id", domain.RecipeField, i),
				fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", req.IngredientID),
			)
		}
	}
	return errs.OrNil()
}
