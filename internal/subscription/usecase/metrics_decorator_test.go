package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
	"github.com/allisson/weathervane/internal/subscription/usecase"
	usecaseMocks "github.com/allisson/weathervane/internal/subscription/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics to avoid dependency issues.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestSubscriptionUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockSubscriptionUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewSubscriptionUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	subscriptionID := uuid.Must(uuid.NewV7())

	t.Run("Create success", func(t *testing.T) {
		input := &subscriptionDomain.CreateSubscriptionInput{Location: "Berlin"}
		subscription := &subscriptionDomain.Subscription{
			ID:       subscriptionID,
			UserID:   "user-1",
			Location: "Berlin",
		}

		mockNext.On("Create", ctx, "user-1", input).Return(subscription, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "subscription", "subscription_create", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "subscription", "subscription_create", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Create(ctx, "user-1", input)
		assert.NoError(t, err)
		assert.Equal(t, subscription, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Create error", func(t *testing.T) {
		input := &subscriptionDomain.CreateSubscriptionInput{Location: "Berlin"}
		expectedErr := errors.New("error")

		mockNext.On("Create", ctx, "user-1", input).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "subscription", "subscription_create", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "subscription", "subscription_create", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Create(ctx, "user-1", input)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List success", func(t *testing.T) {
		subscriptions := []*subscriptionDomain.Subscription{
			{ID: subscriptionID, UserID: "user-1", Location: "Berlin"},
		}

		mockNext.On("List", ctx, "user-1", 0, 50).Return(subscriptions, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "subscription", "subscription_list", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "subscription", "subscription_list", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.List(ctx, "user-1", 0, 50)
		assert.NoError(t, err)
		assert.Equal(t, subscriptions, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List error", func(t *testing.T) {
		expectedErr := errors.New("error")

		mockNext.On("List", ctx, "user-1", 0, 50).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "subscription", "subscription_list", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "subscription", "subscription_list", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.List(ctx, "user-1", 0, 50)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete success", func(t *testing.T) {
		mockNext.On("Delete", ctx, "user-1", subscriptionID).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "subscription", "subscription_delete", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "subscription", "subscription_delete", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.Delete(ctx, "user-1", subscriptionID)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete error", func(t *testing.T) {
		expectedErr := errors.New("error")

		mockNext.On("Delete", ctx, "user-1", subscriptionID).Return(expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "subscription", "subscription_delete", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "subscription", "subscription_delete", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		err := uc.Delete(ctx, "user-1", subscriptionID)
		assert.Error(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
