package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/allisson/weathervane/internal/errors"
	"github.com/allisson/weathervane/internal/outbox/domain"
)

// LogEventProcessor delivers notifications as structured log records. It
// stands in for a real delivery channel (mail, push, webhooks); swapping one
// in means implementing EventProcessor against the same payloads.
type LogEventProcessor struct {
	logger *slog.Logger
}

// NewLogEventProcessor creates a new LogEventProcessor
func NewLogEventProcessor(logger *slog.Logger) *LogEventProcessor {
	return &LogEventProcessor{
		logger: logger,
	}
}

// Process decodes the event payload and emits a delivery record. Unknown
// event types are logged and dropped rather than retried, since retrying
// cannot make them deliverable.
func (p *LogEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case domain.EventTypeSubscriptionCreated, domain.EventTypeSubscriptionDeleted:
		var payload domain.SubscriptionEventPayload
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return errors.Wrap(err, "failed to unmarshal subscription event payload")
		}

		p.logger.Info("subscription notification",
			slog.String("event_type", event.EventType),
			slog.String("subscription_id", payload.SubscriptionID),
			slog.String("user_id", payload.UserID),
			slog.String("location", payload.Location),
		)
	case domain.EventTypeWeatherUpdate:
		var payload domain.WeatherUpdatePayload
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return errors.Wrap(err, "failed to unmarshal weather update payload")
		}

		p.logger.Info("weather update notification",
			slog.String("subscription_id", payload.SubscriptionID),
			slog.String("user_id", payload.UserID),
			slog.String("location", payload.Location),
			slog.Float64("temperature_c", payload.TemperatureC),
			slog.String("condition", payload.Condition),
			slog.Time("observed_at", payload.ObservedAt),
		)
	default:
		p.logger.Warn("unknown event type", slog.String("event_type", event.EventType))
	}

	return nil
}
