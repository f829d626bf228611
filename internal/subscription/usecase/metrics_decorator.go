package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/weathervane/internal/metrics"
	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
)

// subscriptionUseCaseWithMetrics decorates SubscriptionUseCase with metrics
// instrumentation.
type subscriptionUseCaseWithMetrics struct {
	next    SubscriptionUseCase
	metrics metrics.BusinessMetrics
}

// NewSubscriptionUseCaseWithMetrics wraps a SubscriptionUseCase with metrics
// recording.
func NewSubscriptionUseCaseWithMetrics(
	useCase SubscriptionUseCase,
	m metrics.BusinessMetrics,
) SubscriptionUseCase {
	return &subscriptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for subscription creation operations.
func (s *subscriptionUseCaseWithMetrics) Create(
	ctx context.Context,
	userID string,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscription, err := s.next.Create(ctx, userID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "subscription", "subscription_create", status)
	s.metrics.RecordDuration(ctx, "subscription", "subscription_create", time.Since(start), status)

	return subscription, err
}

// List records metrics for subscription list operations.
func (s *subscriptionUseCaseWithMetrics) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscriptions, err := s.next.List(ctx, userID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "subscription", "subscription_list", status)
	s.metrics.RecordDuration(ctx, "subscription", "subscription_list", time.Since(start), status)

	return subscriptions, err
}

// Delete records metrics for subscription deletion operations.
func (s *subscriptionUseCaseWithMetrics) Delete(
	ctx context.Context,
	userID string,
	subscriptionID uuid.UUID,
) error {
	start := time.Now()
	err := s.next.Delete(ctx, userID, subscriptionID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "subscription", "subscription_delete", status)
	s.metrics.RecordDuration(ctx, "subscription", "subscription_delete", time.Since(start), status)

	return err
}
