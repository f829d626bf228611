// Package usecase defines business logic interfaces for subscription operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	outboxDomain "github.com/allisson/weathervane/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
)

// SubscriptionRepository defines persistence operations for subscriptions.
// Implementations must support transaction-aware operations via context propagation.
type SubscriptionRepository interface {
	// Create stores a new subscription. Returns ErrSubscriptionExists if the
	// user already subscribes to the location.
	Create(ctx context.Context, subscription *subscriptionDomain.Subscription) error

	// GetByID retrieves a subscription by ID. Returns ErrSubscriptionNotFound
	// if not found.
	GetByID(ctx context.Context, subscriptionID uuid.UUID) (*subscriptionDomain.Subscription, error)

	// ListByUserID retrieves subscriptions owned by a user, newest first, with
	// offset and limit for pagination.
	ListByUserID(
		ctx context.Context,
		userID string,
		offset, limit int,
	) ([]*subscriptionDomain.Subscription, error)

	// Delete removes a subscription. Deleting a missing subscription is a no-op.
	Delete(ctx context.Context, subscriptionID uuid.UUID) error

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

// SubscriptionUseCase defines lifecycle operations for a user's subscriptions.
// Every operation is scoped to the calling user: listing returns only their
// subscriptions and deletion requires ownership.
type SubscriptionUseCase interface {
	// Create registers the user's interest in a location and enqueues a
	// subscription.created event in the same transaction.
	//
	// Returns ErrInvalidInput wrapped errors when the location is blank or
	// longer than MaxLocationLength, and ErrSubscriptionExists when the user
	// already subscribes to the location.
	Create(
		ctx context.Context,
		userID string,
		input *subscriptionDomain.CreateSubscriptionInput,
	) (*subscriptionDomain.Subscription, error)

	// List retrieves the user's subscriptions, newest first.
	List(
		ctx context.Context,
		userID string,
		offset, limit int,
	) ([]*subscriptionDomain.Subscription, error)

	// Delete removes a subscription after confirming the caller owns it and
	// enqueues a subscription.deleted event in the same transaction.
	//
	// Returns ErrSubscriptionNotFound if the subscription doesn't exist and
	// ErrSubscriptionForbidden if it belongs to another user.
	Delete(ctx context.Context, userID string, subscriptionID uuid.UUID) error
}
