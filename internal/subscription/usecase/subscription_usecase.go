// Package usecase implements business logic orchestration for subscription operations.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/weathervane/internal/database"
	apperrors "github.com/allisson/weathervane/internal/errors"
	outboxDomain "github.com/allisson/weathervane/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
)

// subscriptionUseCase implements SubscriptionUseCase for managing location
// subscriptions.
type subscriptionUseCase struct {
	txManager        database.TxManager
	subscriptionRepo SubscriptionRepository
	outboxRepo       OutboxEventRepository
}

// Create registers the user's interest in a location.
//
// The subscription row and the subscription.created outbox event are written
// in one transaction, so a notification is enqueued exactly when the
// subscription exists.
func (s *subscriptionUseCase) Create(
	ctx context.Context,
	userID string,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "location must not be blank")
	}
	if len(location) > subscriptionDomain.MaxLocationLength {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "location must be at most 120 characters")
	}

	subscription := &subscriptionDomain.Subscription{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
			return err
		}

		event, err := outboxDomain.NewOutboxEvent(
			outboxDomain.EventTypeSubscriptionCreated,
			outboxDomain.SubscriptionEventPayload{
				SubscriptionID: subscription.ID.String(),
				UserID:         subscription.UserID,
				Location:       subscription.Location,
			},
		)
		if err != nil {
			return err
		}

		return s.outboxRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	return subscription, nil
}

// List retrieves the user's subscriptions, newest first.
func (s *subscriptionUseCase) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	subscriptions, err := s.subscriptionRepo.ListByUserID(ctx, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}

	return subscriptions, nil
}

// Delete removes a subscription after confirming the caller owns it.
//
// The row removal and the subscription.deleted outbox event are written in
// one transaction. A missing subscription surfaces as ErrSubscriptionNotFound
// and another user's subscription as ErrSubscriptionForbidden.
func (s *subscriptionUseCase) Delete(
	ctx context.Context,
	userID string,
	subscriptionID uuid.UUID,
) error {
	// Verify the subscription exists first
	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	// Verify ownership before mutating anything
	if subscription.UserID != userID {
		return subscriptionDomain.ErrSubscriptionForbidden
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.subscriptionRepo.Delete(ctx, subscriptionID); err != nil {
			return err
		}

		event, err := outboxDomain.NewOutboxEvent(
			outboxDomain.EventTypeSubscriptionDeleted,
			outboxDomain.SubscriptionEventPayload{
				SubscriptionID: subscription.ID.String(),
				UserID:         subscription.UserID,
				Location:       subscription.Location,
			},
		)
		if err != nil {
			return err
		}

		return s.outboxRepo.Create(ctx, event)
	})
}

// NewSubscriptionUseCase creates a new SubscriptionUseCase with the provided
// dependencies.
func NewSubscriptionUseCase(
	txManager database.TxManager,
	subscriptionRepo SubscriptionRepository,
	outboxRepo OutboxEventRepository,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
	}
}
