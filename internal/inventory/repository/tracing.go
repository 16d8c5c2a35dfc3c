package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/population/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingIngredientRepository wraps an IngredientRepository with spans.
type TracingIngredientRepository struct {
	next domain.IngredientRepository
}

func NewTracingIngredientRepository(next domain.IngredientRepository) *TracingIngredientRepository {
	return &TracingIngredientRepository{next: next}
}

func (r *TracingIngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	ctx, span := tracer.Start(ctx, "repository.Ingredient.Create",
		trace.WithAttributes(
			attribute.String("ingredient.name", ingredient.Name),
			attribute.String("ingredient.unit", string(ingredient.Unit)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, ingredient)
	if err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("ingredient.id", int(ingredient.ID)))
	return nil
}

func (r *TracingIngredientRepository) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	ctx, span := tracer.Start(ctx, "repository.Ingredient.FindByID",
		trace.WithAttributes(attribute.Int("ingredient.id", int(id))),
	)
	defer span.End()

	ingredient, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("ingredient.low_stock", ingredient.IsLowStock()))
	return ingredient, nil
}

func (r *TracingIngredientRepository) FindAll(ctx context.Context) ([]domain.Ingredient, error) {
	ctx, span := tracer.Start(ctx, "repository.Ingredient.FindAll")
	defer span.End()

	ingredients, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(ingredients)))
	return ingredients, nil
}

func (r *TracingIngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	ctx, span := tracer.Start(ctx, "repository.Ingredient.Update",
		trace.WithAttributes(
			attribute.Int("ingredient.id", int(ingredient.ID)),
			attribute.String("ingredient.quantity", ingredient.Quantity.String()),
		),
	)
	defer span.End()

	if err := r.next.Update(ctx, ingredient); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingIngredientRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Ingredient.Delete",
		trace.WithAttributes(attribute.Int("ingredient.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// TracingItemRepository wraps an ItemRepository with spans.
type TracingItemRepository struct {
	next domain.ItemRepository
}

func NewTracingItemRepository(next domain.ItemRepository) *TracingItemRepository {
	return &TracingItemRepository{next: next}
}

func (r *TracingItemRepository) Create(ctx context.Context, item *domain.Item, recipe []domain.IngredientRequirement) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Create",
		trace.WithAttributes(
			attribute.String("item.name", item.Name),
			attribute.String("item.category", string(item.Category)),
			attribute.Int("item.recipe_size", len(recipe)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, item, recipe); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("item.id", int(item.ID)))
	return nil
}

func (r *TracingItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindByID",
		trace.WithAttributes(attribute.Int("item.id", int(id))),
	)
	defer span.End()

	item, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return item, nil
}

func (r *TracingItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindAll")
	defer span.End()

	items, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func (r *TracingItemRepository) Update(
	ctx context.Context,
	id uint,
	mutate func(*domain.Item) error,
	recipe domain.Optional[[]domain.IngredientRequirement],
) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.Update",
		trace.WithAttributes(
			attribute.Int("item.id", int(id)),
			attribute.Bool("item.recipe_replaced", recipe.IsSet()),
		),
	)
	defer span.End()

	item, err := r.next.Update(ctx, id, mutate, recipe)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return item, nil
}

func (r *TracingItemRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Delete",
		trace.WithAttributes(attribute.Int("item.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
