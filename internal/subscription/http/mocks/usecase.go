// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
)

// MockSubscriptionUseCase is a mock implementation of SubscriptionUseCase for testing.
type MockSubscriptionUseCase struct {
	mock.Mock
}

// Create mocks the Create method of SubscriptionUseCase.
func (m *MockSubscriptionUseCase) Create(
	ctx context.Context,
	userID string,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionDomain.Subscription), args.Error(1)
}

// List mocks the List method of SubscriptionUseCase.
func (m *MockSubscriptionUseCase) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}

// Delete mocks the Delete method of SubscriptionUseCase.
func (m *MockSubscriptionUseCase) Delete(
	ctx context.Context,
	userID string,
	subscriptionID uuid.UUID,
) error {
	args := m.Called(ctx, userID, subscriptionID)
	return args.Error(0)
}
