package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/furrymatch/service-matching/internal/platform/domain"
	"github.com/furrymatch/service-matching/internal/platform/kafka"
	"github.com/furrymatch/service-matching/internal/proto/events"
)

// ThreadOpener opens the chat thread of a freshly created match.
type ThreadOpener interface {
	OpenThread(ctx context.Context, matchID uuid.UUID) error
}

// MatchEventConsumer listens to match events and opens the chat thread of
// every new match.
type MatchEventConsumer struct {
	consumer *kafka.Consumer
	threads  ThreadOpener
	logger   *zap.Logger
}

// NewMatchEventConsumer creates a new MatchEventConsumer.
func NewMatchEventConsumer(
	brokers []string,
	groupID string,
	threads ThreadOpener,
	logger *zap.Logger,
) *MatchEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicMatchEvents, logger)
	return &MatchEventConsumer{
		consumer: consumer,
		threads:  threads,
		logger:   logger,
	}
}

// Start begins consuming match events. This blocks until the context is cancelled.
func (c *MatchEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *MatchEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *MatchEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from match topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil
	}

	switch cloudEvent.Type {
	case events.MatchCreated:
		return c.handleMatchCreated(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled match event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *MatchEventConsumer) handleMatchCreated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.MatchCreatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse MatchCreatedEvent data", zap.Error(err))
		return nil
	}
	if evt.MatchID == uuid.Nil {
		c.logger.Error("MatchCreatedEvent without match id", zap.String("event_id", cloudEvent.ID))
		return nil
	}

	if err := c.threads.OpenThread(ctx, evt.MatchID); err != nil {
		// The match may have been deleted before the event was consumed.
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			c.logger.Warn("match gone before thread could be opened",
				zap.String("match_id", evt.MatchID.String()),
			)
			return nil
		}
		c.logger.Error("failed to open thread for new match",
			zap.String("match_id", evt.MatchID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("thread opened for new match",
		zap.String("match_id", evt.MatchID.String()),
	)
	return nil
}
