package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/database"
)

// GormIngredientRepository implements domain.IngredientRepository using GORM.
type GormIngredientRepository struct {
	db *gorm.DB
}

func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

func (r *GormIngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

func (r *GormIngredientRepository) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound("Ingredient", id)
		}
		return nil, fmt.Errorf("failed to find ingredient: %w", err)
	}
	return &ingredient, nil
}

func (r *GormIngredientRepository) FindAll(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients := make([]domain.Ingredient, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *GormIngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	return nil
}

// Delete removes the recipe links first so that the cascade holds even on
// databases where foreign keys are not enforced.
func (r *GormIngredientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&domain.ItemIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe links: %w", err)
		}

		result := tx.Delete(&domain.Ingredient{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete ingredient: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("Ingredient", id)
		}
		return nil
	})
}
