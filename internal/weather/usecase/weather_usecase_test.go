package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/weathervane/internal/errors"
	outboxDomain "github.com/allisson/weathervane/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
)

// mockTxManager is a mock implementation of database.TxManager for testing.
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// mockReadingRepository is a mock implementation of WeatherReadingRepository for testing.
type mockReadingRepository struct {
	mock.Mock
}

func (m *mockReadingRepository) Create(ctx context.Context, reading *weatherDomain.WeatherReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *mockReadingRepository) GetLatestByLocation(
	ctx context.Context,
	location string,
) (*weatherDomain.WeatherReading, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherDomain.WeatherReading), args.Error(1)
}

func (m *mockReadingRepository) ListRange(
	ctx context.Context,
	location string,
	from, to time.Time,
) ([]*weatherDomain.WeatherReading, error) {
	args := m.Called(ctx, location, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*weatherDomain.WeatherReading), args.Error(1)
}

// mockSubscriptionReader is a mock implementation of SubscriptionReader for testing.
type mockSubscriptionReader struct {
	mock.Mock
}

func (m *mockSubscriptionReader) DistinctLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockSubscriptionReader) ListByLocation(
	ctx context.Context,
	location string,
) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}

// mockOutboxEventRepository is a mock implementation of OutboxEventRepository for testing.
type mockOutboxEventRepository struct {
	mock.Mock
}

func (m *mockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// mockProvider is a mock implementation of service.Provider for testing.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Fetch(ctx context.Context, location string) (*weatherDomain.WeatherReading, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherDomain.WeatherReading), args.Error(1)
}

// createTestLogger creates a logger that discards output for testing.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		Freshness:       15 * time.Minute,
		PollConcurrency: 2,
	}
}

// fetchedReading builds a reading the way the provider returns it, without ID
// and CreatedAt.
func fetchedReading(location string, temperatureC float64) *weatherDomain.WeatherReading {
	return &weatherDomain.WeatherReading{
		Location:     location,
		TemperatureC: temperatureC,
		Humidity:     81,
		WindKph:      14.8,
		Condition:    "Clouds",
		ObservedAt:   time.Now().UTC(),
		Source:       "openweathermap",
	}
}

// storedReading builds a reading as the repository returns it.
func storedReading(location string, observedAt time.Time, temperatureC float64) *weatherDomain.WeatherReading {
	return &weatherDomain.WeatherReading{
		ID:           uuid.Must(uuid.NewV7()),
		Location:     location,
		TemperatureC: temperatureC,
		Humidity:     81,
		WindKph:      14.8,
		Condition:    "Clouds",
		ObservedAt:   observedAt,
		Source:       "openweathermap",
		CreatedAt:    observedAt,
	}
}

func TestWeatherUseCase_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ServeFreshStoredReading", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		stored := storedReading("Berlin", time.Now().UTC().Add(-5*time.Minute), 11.5)

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(stored, nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Berlin")

		require.NoError(t, err)
		assert.Equal(t, stored, reading)
		provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
		readingRepo.AssertExpectations(t)
	})

	t.Run("Success_RefreshStaleReading", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		stale := storedReading("Berlin", time.Now().UTC().Add(-30*time.Minute), 9.0)
		fetched := fetchedReading("Berlin", 12.5)

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(stale, nil).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(fetched, nil).
			Once()
		readingRepo.On("Create", ctx, mock.MatchedBy(func(r *weatherDomain.WeatherReading) bool {
			return r.Location == "Berlin" &&
				r.TemperatureC == 12.5 &&
				r.ID != uuid.Nil &&
				!r.CreatedAt.IsZero()
		})).
			Return(nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Berlin")

		require.NoError(t, err)
		assert.Equal(t, 12.5, reading.TemperatureC)
		assert.NotEqual(t, uuid.Nil, reading.ID)
		readingRepo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("Success_FirstFetchForLocation", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		fetched := fetchedReading("Oslo", 4.0)

		readingRepo.On("GetLatestByLocation", ctx, "Oslo").
			Return(nil, weatherDomain.ErrReadingNotFound).
			Once()
		provider.On("Fetch", ctx, "Oslo").
			Return(fetched, nil).
			Once()
		readingRepo.On("Create", ctx, mock.AnythingOfType("*domain.WeatherReading")).
			Return(nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Oslo")

		require.NoError(t, err)
		assert.Equal(t, 4.0, reading.TemperatureC)
		readingRepo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("Success_TrimsLocationWhitespace", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		stored := storedReading("Berlin", time.Now().UTC().Add(-5*time.Minute), 11.5)

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(stored, nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "  Berlin  ")

		require.NoError(t, err)
		assert.Equal(t, "Berlin", reading.Location)
		readingRepo.AssertExpectations(t)
	})

	t.Run("Success_ServeStaleReadingOnProviderFailure", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		stale := storedReading("Berlin", time.Now().UTC().Add(-2*time.Hour), 9.0)

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(stale, nil).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(nil, assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Berlin")

		require.NoError(t, err)
		assert.Equal(t, stale, reading)
		readingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		provider.AssertExpectations(t)
	})

	t.Run("Error_BlankLocation", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "   ")

		assert.Nil(t, reading)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		readingRepo.AssertNotCalled(t, "GetLatestByLocation", mock.Anything, mock.Anything)
	})

	t.Run("Error_ProviderFailureWithNothingStored", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(nil, weatherDomain.ErrReadingNotFound).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(nil, assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Berlin")

		assert.Nil(t, reading)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Error_LocationUnknownToProvider", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		readingRepo.On("GetLatestByLocation", ctx, "Atlantis").
			Return(nil, weatherDomain.ErrReadingNotFound).
			Once()
		provider.On("Fetch", ctx, "Atlantis").
			Return(nil, weatherDomain.ErrLocationNotFound).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Atlantis")

		assert.Nil(t, reading)
		assert.ErrorIs(t, err, weatherDomain.ErrLocationNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(nil, assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Berlin")

		assert.Nil(t, reading)
		assert.ErrorIs(t, err, assert.AnError)
		provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreFails", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		readingRepo.On("GetLatestByLocation", ctx, "Berlin").
			Return(nil, weatherDomain.ErrReadingNotFound).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(fetchedReading("Berlin", 12.5), nil).
			Once()
		readingRepo.On("Create", ctx, mock.AnythingOfType("*domain.WeatherReading")).
			Return(assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		reading, err := useCase.Current(ctx, "Berlin")

		assert.Nil(t, reading)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestWeatherUseCase_Forecast(t *testing.T) {
	ctx := context.Background()

	day := func(yearDay int, hour, minute int) time.Time {
		return time.Date(2026, 8, yearDay, hour, minute, 0, 0, time.UTC)
	}

	t.Run("Success_AggregateByDay", func(t *testing.T) {
		testCases := []struct {
			name     string
			readings []*weatherDomain.WeatherReading
			expected []*weatherDomain.DailyForecast
		}{
			{
				name: "single day",
				readings: []*weatherDomain.WeatherReading{
					storedReading("Berlin", day(22, 6, 0), 5.0),
					storedReading("Berlin", day(22, 14, 0), 12.5),
					storedReading("Berlin", day(22, 22, 0), 8.0),
				},
				expected: []*weatherDomain.DailyForecast{
					{Date: day(22, 0, 0), MinTemperatureC: 5.0, MaxTemperatureC: 12.5, Samples: 3},
				},
			},
			{
				name: "multiple days ascending",
				readings: []*weatherDomain.WeatherReading{
					storedReading("Berlin", day(22, 12, 0), 3.0),
					storedReading("Berlin", day(23, 9, 0), 7.0),
					storedReading("Berlin", day(23, 15, 0), 9.0),
					storedReading("Berlin", day(24, 12, 0), -2.0),
				},
				expected: []*weatherDomain.DailyForecast{
					{Date: day(22, 0, 0), MinTemperatureC: 3.0, MaxTemperatureC: 3.0, Samples: 1},
					{Date: day(23, 0, 0), MinTemperatureC: 7.0, MaxTemperatureC: 9.0, Samples: 2},
					{Date: day(24, 0, 0), MinTemperatureC: -2.0, MaxTemperatureC: -2.0, Samples: 1},
				},
			},
			{
				name: "readings either side of midnight land on different days",
				readings: []*weatherDomain.WeatherReading{
					storedReading("Berlin", day(22, 23, 59), 4.0),
					storedReading("Berlin", day(23, 0, 0), 6.0),
				},
				expected: []*weatherDomain.DailyForecast{
					{Date: day(22, 0, 0), MinTemperatureC: 4.0, MaxTemperatureC: 4.0, Samples: 1},
					{Date: day(23, 0, 0), MinTemperatureC: 6.0, MaxTemperatureC: 6.0, Samples: 1},
				},
			},
			{
				name:     "no readings",
				readings: []*weatherDomain.WeatherReading{},
				expected: []*weatherDomain.DailyForecast{},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				txManager := &mockTxManager{}
				readingRepo := &mockReadingRepository{}
				subscriptionRepo := &mockSubscriptionReader{}
				outboxRepo := &mockOutboxEventRepository{}
				provider := &mockProvider{}

				readingRepo.On("ListRange", ctx, "Berlin", mock.Anything, mock.Anything).
					Return(tc.readings, nil).
					Once()

				useCase := NewWeatherUseCase(
					txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

				forecasts, err := useCase.Forecast(ctx, "Berlin", 14)

				require.NoError(t, err)
				require.NotNil(t, forecasts)
				assert.Equal(t, tc.expected, forecasts)
			})
		}
	})

	t.Run("Success_WindowCoversRequestedDays", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		// Three trailing calendar days including today
		expectedTo := utcDay(time.Now().UTC()).Add(24 * time.Hour)
		expectedFrom := expectedTo.AddDate(0, 0, -3)

		readingRepo.On("ListRange", ctx, "Berlin", expectedFrom, expectedTo).
			Return([]*weatherDomain.WeatherReading{}, nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		_, err := useCase.Forecast(ctx, "Berlin", 3)

		require.NoError(t, err)
		readingRepo.AssertExpectations(t)
	})

	t.Run("Error_BlankLocation", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		forecasts, err := useCase.Forecast(ctx, "   ", 5)

		assert.Nil(t, forecasts)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_DaysOutOfRange", func(t *testing.T) {
		testCases := []struct {
			name string
			days int
		}{
			{"zero", 0},
			{"negative", -1},
			{"above maximum", weatherDomain.MaxForecastDays + 1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				txManager := &mockTxManager{}
				readingRepo := &mockReadingRepository{}
				subscriptionRepo := &mockSubscriptionReader{}
				outboxRepo := &mockOutboxEventRepository{}
				provider := &mockProvider{}

				useCase := NewWeatherUseCase(
					txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

				forecasts, err := useCase.Forecast(ctx, "Berlin", tc.days)

				assert.Nil(t, forecasts)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				readingRepo.AssertNotCalled(t, "ListRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		readingRepo.On("ListRange", ctx, "Berlin", mock.Anything, mock.Anything).
			Return(nil, assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		forecasts, err := useCase.Forecast(ctx, "Berlin", 5)

		assert.Nil(t, forecasts)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestWeatherUseCase_PollOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PollAllLocations", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		berlinSubs := []*subscriptionDomain.Subscription{
			{ID: uuid.Must(uuid.NewV7()), UserID: "user-1", Location: "Berlin"},
			{ID: uuid.Must(uuid.NewV7()), UserID: "user-2", Location: "Berlin"},
		}
		osloSubs := []*subscriptionDomain.Subscription{
			{ID: uuid.Must(uuid.NewV7()), UserID: "user-3", Location: "Oslo"},
		}

		subscriptionRepo.On("DistinctLocations", ctx).
			Return([]string{"Berlin", "Oslo"}, nil).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(fetchedReading("Berlin", 12.5), nil).
			Once()
		provider.On("Fetch", ctx, "Oslo").
			Return(fetchedReading("Oslo", 4.0), nil).
			Once()
		txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil).
			Times(2)
		readingRepo.On("Create", ctx, mock.AnythingOfType("*domain.WeatherReading")).
			Return(nil).
			Times(2)
		subscriptionRepo.On("ListByLocation", ctx, "Berlin").
			Return(berlinSubs, nil).
			Once()
		subscriptionRepo.On("ListByLocation", ctx, "Oslo").
			Return(osloSubs, nil).
			Once()
		outboxRepo.On("Create", ctx, mock.MatchedBy(func(e *outboxDomain.OutboxEvent) bool {
			return e.EventType == outboxDomain.EventTypeWeatherUpdate &&
				e.Status == outboxDomain.OutboxEventStatusPending &&
				strings.Contains(e.Payload, `"subscription_id":"`)
		})).
			Return(nil).
			Times(3)

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		results, err := useCase.PollOnce(ctx)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Berlin", results[0].Location)
		assert.True(t, results[0].Fetched)
		assert.Equal(t, 2, results[0].Notifications)
		assert.Empty(t, results[0].Error)
		assert.Equal(t, "Oslo", results[1].Location)
		assert.True(t, results[1].Fetched)
		assert.Equal(t, 1, results[1].Notifications)
		outboxRepo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("Success_FailingLocationDoesNotAbortOthers", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		subscriptionRepo.On("DistinctLocations", ctx).
			Return([]string{"Berlin", "Oslo"}, nil).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(nil, assert.AnError).
			Once()
		provider.On("Fetch", ctx, "Oslo").
			Return(fetchedReading("Oslo", 4.0), nil).
			Once()
		txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil).
			Once()
		readingRepo.On("Create", ctx, mock.AnythingOfType("*domain.WeatherReading")).
			Return(nil).
			Once()
		subscriptionRepo.On("ListByLocation", ctx, "Oslo").
			Return([]*subscriptionDomain.Subscription{}, nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		results, err := useCase.PollOnce(ctx)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.False(t, results[0].Fetched)
		assert.NotEmpty(t, results[0].Error)
		assert.True(t, results[1].Fetched)
		assert.Equal(t, 0, results[1].Notifications)
		provider.AssertExpectations(t)
	})

	t.Run("Success_NoSubscribedLocations", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		subscriptionRepo.On("DistinctLocations", ctx).
			Return([]string{}, nil).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		results, err := useCase.PollOnce(ctx)

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Len(t, results, 0)
		provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Success_StoreFailureMarksLocation", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		subscriptionRepo.On("DistinctLocations", ctx).
			Return([]string{"Berlin"}, nil).
			Once()
		provider.On("Fetch", ctx, "Berlin").
			Return(fetchedReading("Berlin", 12.5), nil).
			Once()
		txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil).
			Once()
		readingRepo.On("Create", ctx, mock.AnythingOfType("*domain.WeatherReading")).
			Return(assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		results, err := useCase.PollOnce(ctx)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Fetched)
		assert.NotEmpty(t, results[0].Error)
		assert.Equal(t, 0, results[0].Notifications)
	})

	t.Run("Error_ListingLocationsFails", func(t *testing.T) {
		txManager := &mockTxManager{}
		readingRepo := &mockReadingRepository{}
		subscriptionRepo := &mockSubscriptionReader{}
		outboxRepo := &mockOutboxEventRepository{}
		provider := &mockProvider{}

		subscriptionRepo.On("DistinctLocations", ctx).
			Return(nil, assert.AnError).
			Once()

		useCase := NewWeatherUseCase(
			txManager, readingRepo, subscriptionRepo, outboxRepo, provider, testConfig(), createTestLogger())

		results, err := useCase.PollOnce(ctx)

		assert.Nil(t, results)
		assert.ErrorIs(t, err, assert.AnError)
		provider.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})
}
