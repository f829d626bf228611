package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
	"github.com/allisson/weathervane/internal/auth/usecase"
	usecaseMocks "github.com/allisson/weathervane/internal/auth/usecase/mocks"
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

func TestTokenUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockTokenUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	tokenID := uuid.Must(uuid.NewV7())

	t.Run("Issue success", func(t *testing.T) {
		input := &authDomain.IssueTokenInput{Name: "ci-token"}
		output := &authDomain.IssueTokenOutput{PlainToken: "wea_abc"}

		mockNext.On("Issue", ctx, "user-1", input).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_issue", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_issue", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Issue(ctx, "user-1", input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Issue error", func(t *testing.T) {
		input := &authDomain.IssueTokenInput{Name: "ci-token"}
		expectedErr := errors.New("error")

		mockNext.On("Issue", ctx, "user-1", input).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_issue", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_issue", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Issue(ctx, "user-1", input)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List success", func(t *testing.T) {
		tokens := []*authDomain.ApiToken{{ID: tokenID, UserID: "user-1"}}

		mockNext.On("List", ctx, "user-1").Return(tokens, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_list", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_list", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.List(ctx, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, tokens, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Revoke success", func(t *testing.T) {
		mockNext.On("Revoke", ctx, "user-1", tokenID).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_revoke", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_revoke", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.Revoke(ctx, "user-1", tokenID)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Revoke error", func(t *testing.T) {
		mockNext.On("Revoke", ctx, "user-1", tokenID).Return(authDomain.ErrApiTokenForbidden).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_revoke", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_revoke", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		err := uc.Revoke(ctx, "user-1", tokenID)
		assert.ErrorIs(t, err, authDomain.ErrApiTokenForbidden)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("CleanupExpired success", func(t *testing.T) {
		mockNext.On("CleanupExpired", ctx, 30, false).Return(int64(4), nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "token_cleanup", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "token_cleanup", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		count, err := uc.CleanupExpired(ctx, 30, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestAuthenticationUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockAuthenticationUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewAuthenticationUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()

	t.Run("Authenticate success", func(t *testing.T) {
		principal := &authDomain.Principal{UserID: "user-1", AuthType: authDomain.AuthTypeCognito}

		mockNext.On("Authenticate", ctx, "a.b.c").Return(principal, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "authenticate", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "authenticate", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Authenticate(ctx, "a.b.c")
		assert.NoError(t, err)
		assert.Equal(t, principal, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate error", func(t *testing.T) {
		mockNext.On("Authenticate", ctx, "wea_bad").Return(nil, authDomain.ErrInvalidCredentials).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "authenticate", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "authenticate", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Authenticate(ctx, "wea_bad")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
