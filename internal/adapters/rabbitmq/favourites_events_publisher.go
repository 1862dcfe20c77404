package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/contracts"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyFavouritesChanged = "favourites.changed"

// MessagePublisher - *rabbitmq_producer.Publisher или заглушка в тестах.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// favouritesChangedEvent - тело сообщения, схема events/favourites-changed/v1.json.
type favouritesChangedEvent struct {
	EventID    string           `json:"event_id"`
	Action     string           `json:"action"`
	ListingID  int              `json:"listing_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
	Favourites []domain.Listing `json:"favourites"`
}

// FavouritesEventsPublisher реализует FavouritesEventsPort поверх RabbitMQ.
type FavouritesEventsPublisher struct {
	producer       MessagePublisher
	publishTimeout time.Duration
	now            func() time.Time
}

func NewFavouritesEventsPublisher(producer MessagePublisher) (*FavouritesEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &FavouritesEventsPublisher{
		producer:       producer,
		publishTimeout: 5 * time.Second,
		now:            time.Now,
	}, nil
}

func (a *FavouritesEventsPublisher) PublishFavouritesChanged(ctx context.Context, change domain.FavouritesChange) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":  "FavouritesEventsPublisher",
		"action":     string(change.Action),
		"listing_id": change.ListingID,
	})

	favourites := change.Snapshot
	if favourites == nil {
		favourites = []domain.Listing{}
	}
	event := favouritesChangedEvent{
		EventID:    uuid.NewString(),
		Action:     string(change.Action),
		ListingID:  change.ListingID,
		OccurredAt: a.now().UTC(),
		Favourites: favourites,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal favourites event: %w", err)
	}
	if err := contracts.Validate(contracts.FavouritesChangedEventType, contracts.FavouritesChangedEventVersion, body); err != nil {
		adapterLogger.Error("Outgoing favourites event does not match its schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    event.EventID,
		Type:         contracts.FavouritesChangedEventType,
		Headers: amqp.Table{
			"event_version": contracts.FavouritesChangedEventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing favourites event", port.Fields{"event_id": event.EventID})
	if err := a.producer.Publish(publishCtx, RoutingKeyFavouritesChanged, msg); err != nil {
		adapterLogger.Error("Failed to publish favourites event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish favourites event: %w", err)
	}
	return nil
}
