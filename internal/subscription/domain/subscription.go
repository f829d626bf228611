// Package domain defines the core domain models for location subscriptions.
// A subscription registers a user's interest in weather updates for one
// location; the poller fans readings out to subscribers through the outbox.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxLocationLength is the longest accepted location string.
const MaxLocationLength = 120

// Subscription represents a user's interest in weather data for a location.
type Subscription struct {
	// ID is the unique identifier for the subscription.
	ID uuid.UUID
	// UserID is the identity provider subject of the owning user.
	UserID string
	// Location is the subscribed place, a city name or a "lat,lon" pair.
	Location string
	// CreatedAt is the UTC timestamp when the subscription was created.
	CreatedAt time.Time
}

// CreateSubscriptionInput contains the parameters for creating a subscription.
type CreateSubscriptionInput struct {
	Location string
}
