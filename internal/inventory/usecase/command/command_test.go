package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/apperror"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type fakeIngredientRepo struct {
	byID   map[uint]*domain.Ingredient
	nextID uint
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{byID: make(map[uint]*domain.Ingredient)}
}

func (r *fakeIngredientRepo) Create(_ context.Context, ing *domain.Ingredient) error {
	r.nextID++
	ing.ID = r.nextID
	stored := *ing
	r.byID[ing.ID] = &stored
	return nil
}

func (r *fakeIngredientRepo) FindByID(_ context.Context, id uint) (*domain.Ingredient, error) {
	ing, ok := r.byID[id]
	if !ok {
		return nil, apperror.NotFound("Ingredient", id)
	}
	out := *ing
	return &out, nil
}

func (r *fakeIngredientRepo) FindAll(context.Context) ([]domain.Ingredient, error) {
	out := make([]domain.Ingredient, 0, len(r.byID))
	for _, ing := range r.byID {
		out = append(out, *ing)
	}
	return out, nil
}

func (r *fakeIngredientRepo) Update(_ context.Context, ing *domain.Ingredient) error {
	stored := *ing
	r.byID[ing.ID] = &stored
	return nil
}

func (r *fakeIngredientRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return apperror.NotFound("Ingredient", id)
	}
	delete(r.byID, id)
	return nil
}

type fakeItemRepo struct {
	created  *domain.Item
	recipe   []domain.IngredientRequirement
	updated  domain.Optional[[]domain.IngredientRequirement]
	existing *domain.Item
	err      error
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item, recipe []domain.IngredientRequirement) error {
	if r.err != nil {
		return r.err
	}
	item.ID = 7
	r.created = item
	r.recipe = recipe
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uint) (*domain.Item, error) {
	if r.existing == nil {
		return nil, apperror.NotFound("Item", id)
	}
	return r.existing, nil
}

func (r *fakeItemRepo) FindAll(context.Context) ([]domain.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, id uint, mutate func(*domain.Item) error, recipe domain.Optional[[]domain.IngredientRequirement]) (*domain.Item, error) {
	if r.existing == nil {
		return nil, apperror.NotFound("Item", id)
	}
	if err := mutate(r.existing); err != nil {
		return nil, err
	}
	r.updated = recipe
	return r.existing, nil
}

func (r *fakeItemRepo) Delete(context.Context, uint) error {
	return r.err
}

type recordingPublisher struct {
	lowStock []domain.Ingredient
	changes  []string
	err      error
}

func (p *recordingPublisher) PublishLowStock(_ context.Context, ing domain.Ingredient) error {
	p.lowStock = append(p.lowStock, ing)
	return p.err
}

func (p *recordingPublisher) PublishItemChanged(_ context.Context, _ uint, change string) error {
	p.changes = append(p.changes, change)
	return p.err
}

func TestCreateIngredientDefaults(t *testing.T) {
	repo := newFakeIngredientRepo()
	pub := &recordingPublisher{}
	h := NewCreateIngredientHandler(repo, pub)

	ing, err := h.Handle(context.Background(), CreateIngredientCommand{Name: "Salt"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if ing.Unit != domain.UnitPieces {
		t.Errorf("Unit = %q, want pcs", ing.Unit)
	}
	if !ing.Quantity.IsZero() || !ing.MinStockLevel.IsZero() || !ing.CostPerUnit.IsZero() {
		t.Errorf("numeric defaults = %s/%s/%s, want zeros", ing.Quantity, ing.MinStockLevel, ing.CostPerUnit)
	}
	// 0 <= 0 counts as low stock.
	if len(pub.lowStock) != 1 {
		t.Errorf("low stock events = %d, want 1", len(pub.lowStock))
	}
}

func TestCreateIngredientValidation(t *testing.T) {
	h := NewCreateIngredientHandler(newFakeIngredientRepo(), nil)

	_, err := h.Handle(context.Background(), CreateIngredientCommand{
		Name:     "",
		Unit:     "lbs",
		Quantity: dec("-1"),
	})
	v, ok := apperror.IsValidation(err)
	if !ok {
		t.Fatalf("Handle() error = %v, want validation error", err)
	}
	for _, field := range []string{"name", "unit", "quantity"} {
		if _, ok := v.Fields[field]; !ok {
			t.Errorf("missing error for %s in %v", field, v.Fields)
		}
	}
}

func TestUpdateIngredientPublishesOnlyWhenLow(t *testing.T) {
	repo := newFakeIngredientRepo()
	pub := &recordingPublisher{}
	ctx := context.Background()

	ing, err := NewCreateIngredientHandler(repo, nil).Handle(ctx, CreateIngredientCommand{
		Name:          "Flour",
		Quantity:      dec("10"),
		MinStockLevel: dec("2"),
	})
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	h := NewUpdateIngredientHandler(repo, pub)
	if _, err := h.Handle(ctx, UpdateIngredientCommand{ID: ing.ID, Quantity: dec("5")}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(pub.lowStock) != 0 {
		t.Errorf("low stock events = %d, want 0", len(pub.lowStock))
	}

	updated, err := h.Handle(ctx, UpdateIngredientCommand{ID: ing.ID, Quantity: dec("2.00")})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if updated.Name != "Flour" || !updated.MinStockLevel.Equal(*dec("2")) {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if len(pub.lowStock) != 1 {
		t.Errorf("low stock events = %d, want 1", len(pub.lowStock))
	}
}

func TestUpdateIngredientClearsDescription(t *testing.T) {
	repo := newFakeIngredientRepo()
	ctx := context.Background()
	desc := "fine"
	ing, _ := NewCreateIngredientHandler(repo, nil).Handle(ctx, CreateIngredientCommand{Name: "Sugar", Description: &desc})

	h := NewUpdateIngredientHandler(repo, nil)
	kept, err := h.Handle(ctx, UpdateIngredientCommand{ID: ing.ID})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if kept.Description == nil || *kept.Description != "fine" {
		t.Errorf("Description = %v, want fine", kept.Description)
	}

	cleared, err := h.Handle(ctx, UpdateIngredientCommand{ID: ing.ID, Description: domain.Some[*string](nil)})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if cleared.Description != nil {
		t.Errorf("Description = %q, want nil", *cleared.Description)
	}
}

func TestUpdateIngredientNotFound(t *testing.T) {
	h := NewUpdateIngredientHandler(newFakeIngredientRepo(), nil)
	_, err := h.Handle(context.Background(), UpdateIngredientCommand{ID: 3})
	if _, ok := apperror.IsNotFound(err); !ok {
		t.Errorf("Handle() error = %v, want not found", err)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	h := NewCreateIngredientHandler(newFakeIngredientRepo(), pub)

	ing, err := h.Handle(context.Background(), CreateIngredientCommand{Name: "Yeast"})
	if err != nil {
		t.Fatalf("Handle() error = %v, want nil", err)
	}
	if ing.ID == 0 {
		t.Error("ingredient was not stored")
	}
}

func TestCreateItemDefaults(t *testing.T) {
	repo := &fakeItemRepo{}
	pub := &recordingPublisher{}
	h := NewCreateItemHandler(repo, pub)

	recipe := []domain.IngredientRequirement{{IngredientID: 1, QuantityRequired: *dec("0.5")}}
	item, err := h.Handle(context.Background(), CreateItemCommand{Name: "Tea", Price: dec("2.00"), Recipe: recipe})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if item.Category != domain.CategoryBeverage {
		t.Errorf("Category = %q, want beverage", item.Category)
	}
	if !item.IsAvailable {
		t.Error("IsAvailable = false, want true")
	}
	if len(repo.recipe) != 1 {
		t.Errorf("recipe passed to repo = %v", repo.recipe)
	}
	if len(pub.changes) != 1 || pub.changes[0] != domain.ItemCreated {
		t.Errorf("changes = %v, want [created]", pub.changes)
	}
}

func TestCreateItemRecipeValidation(t *testing.T) {
	repo := &fakeItemRepo{}
	h := NewCreateItemHandler(repo, nil)

	_, err := h.Handle(context.Background(), CreateItemCommand{
		Name:  "Tea",
		Price: dec("2"),
		Recipe: []domain.IngredientRequirement{
			{IngredientID: 1, QuantityRequired: *dec("1")},
			{IngredientID: 1, QuantityRequired: *dec("1")},
			{IngredientID: 2, QuantityRequired: *dec("-1")},
		},
	})
	v, ok := apperror.IsValidation(err)
	if !ok {
		t.Fatalf("Handle() error = %v, want validation error", err)
	}
	if _, ok := v.Fields["ingredients_data.1.ingredient_id"]; !ok {
		t.Errorf("missing duplicate error in %v", v.Fields)
	}
	if _, ok := v.Fields["ingredients_data.2.quantity_required"]; !ok {
		t.Errorf("missing quantity error in %v", v.Fields)
	}
	if repo.created != nil {
		t.Error("repository was called despite validation errors")
	}
}

func TestCreateItemRequiresPrice(t *testing.T) {
	_, err := NewCreateItemHandler(&fakeItemRepo{}, nil).Handle(context.Background(), CreateItemCommand{Name: "Tea"})
	v, ok := apperror.IsValidation(err)
	if !ok || v.Fields["price"] != "This field is required." {
		t.Errorf("Handle() error = %v, want price required", err)
	}
}

func TestUpdateItemPassesRecipeThrough(t *testing.T) {
	repo := &fakeItemRepo{existing: &domain.Item{ID: 7, Name: "Tea", Category: domain.CategoryBeverage, Price: *dec("2")}}
	pub := &recordingPublisher{}
	h := NewUpdateItemHandler(repo, pub)
	ctx := context.Background()

	available := false
	item, err := h.Handle(ctx, UpdateItemCommand{ID: 7, IsAvailable: &available})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if item.IsAvailable || item.Name != "Tea" {
		t.Errorf("item = %+v, want unavailable Tea", item)
	}
	if repo.updated.IsSet() {
		t.Error("recipe set without ingredients_data")
	}

	if _, err := h.Handle(ctx, UpdateItemCommand{ID: 7, Recipe: domain.Some([]domain.IngredientRequirement{})}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if reqs, ok := repo.updated.Get(); !ok || len(reqs) != 0 {
		t.Errorf("recipe = %v, %v; want empty, set", reqs, ok)
	}
	if len(pub.changes) != 2 || pub.changes[1] != domain.ItemUpdated {
		t.Errorf("changes = %v, want two updates", pub.changes)
	}
}

func TestUpdateItemRejectsInvalidCategory(t *testing.T) {
	repo := &fakeItemRepo{existing: &domain.Item{ID: 7}}
	bad := domain.Category("snack")
	_, err := NewUpdateItemHandler(repo, nil).Handle(context.Background(), UpdateItemCommand{ID: 7, Category: &bad})
	if v, ok := apperror.IsValidation(err); !ok || v.Fields["category"] != `"snack" is not a valid choice.` {
		t.Errorf("Handle() error = %v, want invalid choice", err)
	}
}

func TestDeleteItemNotifiesOnlyOnSuccess(t *testing.T) {
	pub := &recordingPublisher{}
	repo := &fakeItemRepo{err: apperror.NotFound("Item", 9)}
	h := NewDeleteItemHandler(repo, pub)

	if err := h.Handle(context.Background(), DeleteItemCommand{ID: 9}); err == nil {
		t.Fatal("Handle() error = nil, want not found")
	}
	if len(pub.changes) != 0 {
		t.Errorf("changes = %v, want none", pub.changes)
	}

	repo.err = nil
	if err := h.Handle(context.Background(), DeleteItemCommand{ID: 9}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(pub.changes) != 1 || pub.changes[0] != domain.ItemDeleted {
		t.Errorf("changes = %v, want [deleted]", pub.changes)
	}
}
