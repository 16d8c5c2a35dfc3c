package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups items on the menu.
type Category string

const (
	CategoryBeverage Category = "beverage"
	CategoryFood     Category = "food"
	CategoryDessert  Category = "dessert"
	CategoryOther    Category = "other"
)

// DefaultCategory is applied when a new item omits its category.
const DefaultCategory = CategoryBeverage

var categoryLabels = map[Category]string{
	CategoryBeverage: "Beverage",
	CategoryFood:     "Food",
	CategoryDessert:  "Dessert",
	CategoryOther:    "Other",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	return categoryLabels[c]
}

// Item is a finished product built from ingredients.
type Item struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"size:100;not null;index:idx_items_category_name,priority:2"`
	Description *string          `json:"description"`
	Category    Category         `json:"category" gorm:"size:50;not null;index:idx_items_category_name,priority:1"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	IsAvailable bool             `json:"is_available" gorm:"not null"`
	Recipe      []ItemIngredient `json:"item_ingredients" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}

// ItemIngredient links an item to one ingredient with the quantity needed
// to make one unit of the item. (item_id, ingredient_id) is unique.
type ItemIngredient struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	ItemID           uint            `json:"item" gorm:"not null;uniqueIndex:idx_item_ingredient"`
	IngredientID     uint            `json:"ingredient" gorm:"not null;uniqueIndex:idx_item_ingredient;index"`
	Ingredient       *Ingredient     `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	QuantityRequired decimal.Decimal `json:"quantity_required" gorm:"type:decimal(10,2);not null"`
}

func (ItemIngredient) TableName() string {
	return "item_ingredients"
}

// RecipeField is the request field carrying an item's ingredient requirements.
// Recipe validation errors are keyed under it.
const RecipeField = "ingredients_data"

// IngredientRequirement is one entry of a recipe as submitted by a client.
type IngredientRequirement struct {
	IngredientID     uint
	QuantityRequired decimal.Decimal
}

// RecipeLinks converts requirements into unsaved links for itemID.
func RecipeLinks(itemID uint, reqs []IngredientRequirement) []ItemIngredient {
	links := make([]ItemIngredient, 0, len(reqs))
	for _, req := range reqs {
		links = append(links, ItemIngredient{
			ItemID:           itemID,
			IngredientID:     req.IngredientID,
			QuantityRequired: req.QuantityRequired,
		})
	}
	return links
}
