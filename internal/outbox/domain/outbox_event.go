// Package domain defines the transactional outbox entities and event types.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/weathervane/internal/errors"
)

// Event types emitted through the outbox. Subscription lifecycle events are
// enqueued by the subscription use case in the same transaction as the row
// change; weather update events are enqueued by the poller for every
// subscriber of a freshly fetched location.
const (
	EventTypeSubscriptionCreated = "subscription.created"
	EventTypeSubscriptionDeleted = "subscription.deleted"
	EventTypeWeatherUpdate       = "notification.weather_update"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent represents an event in the transactional outbox pattern
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent builds a pending event with a serialized payload. Use cases
// call this inside the transaction that performs the row change, so the event
// and the change commit or roll back together.
func NewOutboxEvent(eventType string, payload any) (*OutboxEvent, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal outbox payload")
	}

	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(payloadJSON),
		Status:    OutboxEventStatusPending,
		Retries:   0,
	}, nil
}
