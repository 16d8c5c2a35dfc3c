package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/logger"
)

// Publisher sends inventory events to Kafka. It implements
// domain.EventPublisher.
type Publisher struct {
	producer sarama.SyncProducer
	now      func() time.Time
}

var _ domain.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer, now: time.Now}
}

// PublishLowStock publishes an ingredient.low_stock event
func (p *Publisher) PublishLowStock(ctx context.Context, ingredient domain.Ingredient) error {
	event := LowStockEvent{
		EventID:       uuid.NewString(),
		EventType:     EventTypeLowStock,
		IngredientID:  ingredient.ID,
		Name:          ingredient.Name,
		Quantity:      ingredient.Quantity.StringFixed(2),
		MinStockLevel: ingredient.MinStockLevel.StringFixed(2),
		Unit:          string(ingredient.Unit),
		Timestamp:     p.now(),
	}
	key := fmt.Sprintf("ingredient_%d", ingredient.ID)
	return p.send(ctx, TopicLowStock, EventTypeLowStock, event.EventID, key, event,
		attribute.Int64("ingredient.id", int64(ingredient.ID)))
}

// PublishItemChanged publishes an item.changed event
func (p *Publisher) PublishItemChanged(ctx context.Context, itemID uint, change string) error {
	event := ItemChangedEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeItemChanged,
		ItemID:    itemID,
		Change:    change,
		Timestamp: p.now(),
	}
	key := fmt.Sprintf("item_%d", itemID)
	return p.send(ctx, TopicItemChanged, EventTypeItemChanged, event.EventID, key, event,
		attribute.Int64("item.id", int64(itemID)),
		attribute.String("item.change", change))
}

func (p *Publisher) send(ctx context.Context, topic, eventType, eventID, key string, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	body, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(body),
		Headers: headers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Info(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
