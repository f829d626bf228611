// Package usecase defines business logic interfaces for weather operations.
package usecase

import (
	"context"
	"time"

	outboxDomain "github.com/allisson/weathervane/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
)

// WeatherReadingRepository defines persistence operations for weather
// readings. Implementations must support transaction-aware operations via
// context propagation.
type WeatherReadingRepository interface {
	// Create stores a new reading. Readings are insert-only.
	Create(ctx context.Context, reading *weatherDomain.WeatherReading) error

	// GetLatestByLocation retrieves the most recent reading for a location.
	// Returns ErrReadingNotFound when nothing is stored yet.
	GetLatestByLocation(ctx context.Context, location string) (*weatherDomain.WeatherReading, error)

	// ListRange retrieves readings observed within [from, to), oldest first.
	ListRange(
		ctx context.Context,
		location string,
		from, to time.Time,
	) ([]*weatherDomain.WeatherReading, error)
}

// SubscriptionReader exposes the subscription lookups the poller needs:
// which locations to fetch and who subscribes to each of them.
type SubscriptionReader interface {
	// DistinctLocations returns every location with at least one subscriber.
	DistinctLocations(ctx context.Context) ([]string, error)

	// ListByLocation retrieves all subscriptions for a location.
	ListByLocation(ctx context.Context, location string) ([]*subscriptionDomain.Subscription, error)
}

// OutboxEventRepository enqueues notification events. Only Create is needed
// here; the outbox worker owns draining and updating.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// WeatherUseCase defines read and poll operations over weather data.
type WeatherUseCase interface {
	// Current returns the freshest reading for a location, fetching from the
	// provider when the stored one is older than the freshness window. When
	// the provider fails and a stale reading exists, the stale reading is
	// served.
	//
	// Returns ErrInvalidInput wrapped errors when the location is blank and
	// ErrLocationNotFound when the provider does not know the location.
	Current(ctx context.Context, location string) (*weatherDomain.WeatherReading, error)

	// Forecast aggregates the stored readings of the trailing days into one
	// entry per UTC calendar day with min/max temperature and sample count.
	// Days without readings are omitted.
	//
	// Returns an ErrInvalidInput wrapped error when days is outside
	// [MinForecastDays, MaxForecastDays].
	Forecast(ctx context.Context, location string, days int) ([]*weatherDomain.DailyForecast, error)

	// PollOnce fetches and stores a reading for every subscribed location
	// with bounded concurrency, enqueueing a weather update event per
	// subscriber in the same transaction as the reading insert. Per-location
	// failures are reported in the results, not returned as an error.
	PollOnce(ctx context.Context) ([]*weatherDomain.PollLocationResult, error)
}
