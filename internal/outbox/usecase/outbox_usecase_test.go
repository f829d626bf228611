package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/allisson/weathervane/internal/outbox/domain"
)

// TestMain verifies the worker leaves no goroutines behind, since Start runs
// a ticker loop that must unwind cleanly on context cancellation.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// createTestLogger creates a logger that discards output for testing.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockEventProcessor is a mock implementation of EventProcessor
type MockEventProcessor struct {
	mock.Mock
}

func (m *MockEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testConfig() Config {
	return Config{
		Interval:   5 * time.Second,
		BatchSize:  10,
		MaxRetries: 3,
	}
}

func TestNewOutboxUseCase(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	assert.NotNil(t, uc)
	assert.Equal(t, config.Interval, uc.config.Interval)
	assert.Equal(t, config.BatchSize, uc.config.BatchSize)
	assert.Equal(t, config.MaxRetries, uc.config.MaxRetries)
}

func TestOutboxUseCase_Start_ContextCancellation(t *testing.T) {
	config := testConfig()
	config.Interval = 100 * time.Millisecond
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel context immediately
	cancel()

	err := uc.Start(ctx)
	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestOutboxUseCase_ProcessEvents_Success(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx := context.Background()
	events := []*domain.OutboxEvent{
		{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: domain.EventTypeSubscriptionCreated,
			Payload:   `{"subscription_id": "0191d3a8-1111-7000-8000-000000000001", "user_id": "user-7f2c", "location": "Berlin"}`,
			Status:    domain.OutboxEventStatusPending,
			Retries:   0,
		},
		{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: domain.EventTypeWeatherUpdate,
			Payload:   `{"subscription_id": "0191d3a8-1111-7000-8000-000000000002", "user_id": "user-9a1b", "location": "Oslo", "temperature_c": 4.5, "condition": "Clouds", "observed_at": "2025-01-15T12:00:00Z"}`,
			Status:    domain.OutboxEventStatusPending,
			Retries:   0,
		},
	}

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	outboxRepo.On("GetPendingEvents", ctx, config.BatchSize).Return(events, nil)
	eventProcessor.On("Process", ctx, events[0]).Return(nil)
	eventProcessor.On("Process", ctx, events[1]).Return(nil)
	outboxRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.Status == domain.OutboxEventStatusProcessed && e.ProcessedAt != nil
	})).Return(nil).Times(2)

	err := uc.ProcessEvents(ctx)

	assert.NoError(t, err)
	txManager.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	eventProcessor.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_NoEvents(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx := context.Background()
	emptyEvents := []*domain.OutboxEvent{}

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	outboxRepo.On("GetPendingEvents", ctx, config.BatchSize).Return(emptyEvents, nil)

	err := uc.ProcessEvents(ctx)

	assert.NoError(t, err)
	txManager.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	eventProcessor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestOutboxUseCase_ProcessEvents_GetPendingError(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx := context.Background()
	getError := errors.New("database error")

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	outboxRepo.On("GetPendingEvents", ctx, config.BatchSize).Return(nil, getError)

	err := uc.ProcessEvents(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	txManager.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_ProcessorError(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx := context.Background()
	eventID := uuid.Must(uuid.NewV7())
	events := []*domain.OutboxEvent{
		{
			ID:        eventID,
			EventType: domain.EventTypeWeatherUpdate,
			Payload:   `{"location": "Oslo"}`,
			Status:    domain.OutboxEventStatusPending,
			Retries:   0,
		},
	}

	processingError := errors.New("processing failed")

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	outboxRepo.On("GetPendingEvents", ctx, config.BatchSize).Return(events, nil)
	eventProcessor.On("Process", ctx, events[0]).Return(processingError)
	outboxRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.ID == eventID &&
			e.Retries == 1 &&
			e.Status == domain.OutboxEventStatusPending &&
			e.LastError != nil &&
			*e.LastError == "processing failed"
	})).Return(nil)

	err := uc.ProcessEvents(ctx)

	// A failed delivery is recorded on the event, not surfaced to the caller
	assert.NoError(t, err)
	txManager.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	eventProcessor.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_MaxRetriesReached(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx := context.Background()
	eventID := uuid.Must(uuid.NewV7())
	events := []*domain.OutboxEvent{
		{
			ID:        eventID,
			EventType: domain.EventTypeWeatherUpdate,
			Payload:   `{"location": "Oslo"}`,
			Status:    domain.OutboxEventStatusPending,
			Retries:   2, // Will become 3 after this attempt
		},
	}

	processingError := errors.New("processing failed")

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	outboxRepo.On("GetPendingEvents", ctx, config.BatchSize).Return(events, nil)
	eventProcessor.On("Process", ctx, events[0]).Return(processingError)
	outboxRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.ID == eventID &&
			e.Retries == 3 &&
			e.Status == domain.OutboxEventStatusFailed &&
			e.LastError != nil
	})).Return(nil)

	err := uc.ProcessEvents(ctx)

	assert.NoError(t, err)
	txManager.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	eventProcessor.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_UpdateError(t *testing.T) {
	config := testConfig()
	txManager := &MockTxManager{}
	outboxRepo := &MockOutboxEventRepository{}
	eventProcessor := &MockEventProcessor{}

	uc := NewOutboxUseCase(config, txManager, outboxRepo, eventProcessor, createTestLogger())

	ctx := context.Background()
	events := []*domain.OutboxEvent{
		{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: domain.EventTypeSubscriptionDeleted,
			Payload:   `{"subscription_id": "0191d3a8-1111-7000-8000-000000000003", "user_id": "user-7f2c", "location": "Berlin"}`,
			Status:    domain.OutboxEventStatusPending,
			Retries:   0,
		},
	}

	updateError := errors.New("update failed")

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	outboxRepo.On("GetPendingEvents", ctx, config.BatchSize).Return(events, nil)
	eventProcessor.On("Process", ctx, events[0]).Return(nil)
	outboxRepo.On("Update", ctx, mock.AnythingOfType("*domain.OutboxEvent")).Return(updateError)

	err := uc.ProcessEvents(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "update failed")
	txManager.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	eventProcessor.AssertExpectations(t)
}
