package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit of an ingredient's quantity.
type Unit string

const (
	UnitKilograms   Unit = "kg"
	UnitGrams       Unit = "g"
	UnitLiters      Unit = "l"
	UnitMilliliters Unit = "ml"
	UnitPieces      Unit = "pcs"
)

// DefaultUnit is applied when a new ingredient omits its unit.
const DefaultUnit = UnitPieces

var unitLabels = map[Unit]string{
	UnitKilograms:   "Kilograms",
	UnitGrams:       "Grams",
	UnitLiters:      "Liters",
	UnitMilliliters: "Milliliters",
	UnitPieces:      "Pieces",
}

func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

// Label is the human readable name of the unit.
func (u Unit) Label() string {
	return unitLabels[u]
}

// Ingredient is a raw material held in stock.
type Ingredient struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:100;not null"`
	Description   *string         `json:"description"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:decimal(10,2);not null;default:0"`
	Unit          Unit            `json:"unit" gorm:"size:20;not null"`
	MinStockLevel decimal.Decimal `json:"min_stock_level" gorm:"type:decimal(10,2);not null;default:0"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// IsLowStock reports whether on-hand quantity is at or below the minimum.
// It is derived on every read and never stored.
func (i Ingredient) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinStockLevel)
}

// FilterLowStock returns the ingredients that are at or below their minimum,
// preserving input order.
func FilterLowStock(ingredients []Ingredient) []Ingredient {
	low := make([]Ingredient, 0)
	for _, ing := range ingredients {
		if ing.IsLowStock() {
			low = append(low, ing)
		}
	}
	return low
}
