package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furrymatch/service-matching/internal/platform/kafka"
	"github.com/furrymatch/service-matching/internal/proto/events"
)

// EventPublisher sends CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// Broadcaster pushes a JSON payload to the live clients of a match.
type Broadcaster interface {
	Broadcast(matchID uuid.UUID, v interface{})
}

// Transactor runs fn in a single database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ObjectPresigner issues time-limited object storage URLs.
type ObjectPresigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// publishEvent wraps data in a CloudEvent and publishes it. Failures are
// logged; the request that produced the event has already committed.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
