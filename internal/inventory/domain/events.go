package domain

import "context"

// Item change kinds carried by ItemChangedEvent.
const (
	ItemCreated = "created"
	ItemUpdated = "updated"
	ItemDeleted = "deleted"
)

// EventPublisher announces committed inventory changes to other systems.
// Implementations must not be relied upon for consistency: a failed publish
// never undoes a committed write.
type EventPublisher interface {
	PublishLowStock(ctx context.Context, ingredient Ingredient) error
	PublishItemChanged(ctx context.Context, itemID uint, change string) error
}

// NoopPublisher discards events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishLowStock(context.Context, Ingredient) error { return nil }

func (NoopPublisher) PublishItemChanged(context.Context, uint, string) error { return nil }
