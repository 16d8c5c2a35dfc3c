package kafka

import "time"

// LowStockEvent is emitted when a committed ingredient write leaves the
// ingredient at or below its minimum stock level.
type LowStockEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	IngredientID  uint      `json:"ingredient_id"`
	Name          string    `json:"name"`
	Quantity      string    `json:"quantity"`
	MinStockLevel string    `json:"min_stock_level"`
	Unit          string    `json:"unit"`
	Timestamp     time.Time `json:"timestamp"`
}

// ItemChangedEvent is emitted after an item is created, updated or deleted.
type ItemChangedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ItemID    uint      `json:"item_id"`
	Change    string    `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeLowStock    = "ingredient.low_stock"
	EventTypeItemChanged = "item.changed"
)

// Kafka topics
const (
	TopicLowStock    = "ingredient-low-stock"
	TopicItemChanged = "item-changed"
)
