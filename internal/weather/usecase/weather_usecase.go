package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/weathervane/internal/database"
	apperrors "github.com/allisson/weathervane/internal/errors"
	outboxDomain "github.com/allisson/weathervane/internal/outbox/domain"
	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
	weatherService "github.com/allisson/weathervane/internal/weather/service"
)

// Config holds weather usecase configuration.
type Config struct {
	// Freshness is how long a stored reading serves current-conditions
	// requests before the provider is asked again.
	Freshness time.Duration
	// PollConcurrency is the number of locations polled in parallel.
	PollConcurrency int
}

// weatherUseCase implements WeatherUseCase over the provider client and the
// reading store.
type weatherUseCase struct {
	txManager        database.TxManager
	readingRepo      WeatherReadingRepository
	subscriptionRepo SubscriptionReader
	outboxRepo       OutboxEventRepository
	provider         weatherService.Provider
	config           Config
	logger           *slog.Logger
}

// Current returns the freshest reading for a location.
//
// A stored reading younger than the freshness window is served as is.
// Otherwise the provider is asked and the new reading stored. When the
// provider fails but a stale reading exists, the stale reading is served and
// the failure logged; with nothing stored the provider error goes through.
func (w *weatherUseCase) Current(
	ctx context.Context,
	location string,
) (*weatherDomain.WeatherReading, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "location must not be blank")
	}

	latest, err := w.readingRepo.GetLatestByLocation(ctx, location)
	if err != nil && !errors.Is(err, weatherDomain.ErrReadingNotFound) {
		return nil, err
	}

	if latest != nil && time.Since(latest.ObservedAt) < w.config.Freshness {
		return latest, nil
	}

	reading, fetchErr := w.provider.Fetch(ctx, location)
	if fetchErr != nil {
		if latest != nil {
			w.logger.Warn("serving stale weather reading after provider failure",
				slog.String("location", location),
				slog.Time("observed_at", latest.ObservedAt),
				slog.String("error", fetchErr.Error()),
			)
			return latest, nil
		}
		return nil, fetchErr
	}

	reading.ID = uuid.Must(uuid.NewV7())
	reading.CreatedAt = time.Now().UTC()

	if err := w.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}

	return reading, nil
}

// Forecast aggregates the stored readings of the trailing days into one entry
// per UTC calendar day.
func (w *weatherUseCase) Forecast(
	ctx context.Context,
	location string,
	days int,
) ([]*weatherDomain.DailyForecast, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "location must not be blank")
	}
	if days < weatherDomain.MinForecastDays || days > weatherDomain.MaxForecastDays {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("days must be between %d and %d", weatherDomain.MinForecastDays, weatherDomain.MaxForecastDays),
		)
	}

	// The window covers the trailing full calendar days including today
	to := utcDay(time.Now().UTC()).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -days)

	readings, err := w.readingRepo.ListRange(ctx, location, from, to)
	if err != nil {
		return nil, err
	}

	// Readings arrive oldest first, so days are discovered in ascending order
	byDay := make(map[time.Time]*weatherDomain.DailyForecast)
	forecasts := make([]*weatherDomain.DailyForecast, 0)
	for _, reading := range readings {
		day := utcDay(reading.ObservedAt.UTC())

		forecast, ok := byDay[day]
		if !ok {
			forecast = &weatherDomain.DailyForecast{
				Date:            day,
				MinTemperatureC: reading.TemperatureC,
				MaxTemperatureC: reading.TemperatureC,
			}
			byDay[day] = forecast
			forecasts = append(forecasts, forecast)
		}

		if reading.TemperatureC < forecast.MinTemperatureC {
			forecast.MinTemperatureC = reading.TemperatureC
		}
		if reading.TemperatureC > forecast.MaxTemperatureC {
			forecast.MaxTemperatureC = reading.TemperatureC
		}
		forecast.Samples++
	}

	return forecasts, nil
}

// PollOnce fetches and stores a reading for every subscribed location with
// bounded concurrency. Each location reports its own result; a failing
// provider call marks that location failed without aborting the others.
func (w *weatherUseCase) PollOnce(ctx context.Context) ([]*weatherDomain.PollLocationResult, error) {
	locations, err := w.subscriptionRepo.DistinctLocations(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*weatherDomain.PollLocationResult, len(locations))

	group := new(errgroup.Group)
	group.SetLimit(w.config.PollConcurrency)
	for i, location := range locations {
		group.Go(func() error {
			results[i] = w.pollLocation(ctx, location)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// pollLocation fetches one location and fans the reading out to its
// subscribers. The reading insert and the weather update events commit in one
// transaction, so subscribers are notified exactly once per stored reading.
func (w *weatherUseCase) pollLocation(
	ctx context.Context,
	location string,
) *weatherDomain.PollLocationResult {
	result := &weatherDomain.PollLocationResult{Location: location}

	reading, err := w.provider.Fetch(ctx, location)
	if err != nil {
		w.logger.Error("failed to poll location",
			slog.String("location", location),
			slog.String("error", err.Error()),
		)
		result.Error = err.Error()
		return result
	}

	reading.ID = uuid.Must(uuid.NewV7())
	reading.CreatedAt = time.Now().UTC()

	var notifications int
	err = w.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := w.readingRepo.Create(ctx, reading); err != nil {
			return err
		}

		subscriptions, err := w.subscriptionRepo.ListByLocation(ctx, location)
		if err != nil {
			return err
		}

		for _, subscription := range subscriptions {
			event, err := outboxDomain.NewOutboxEvent(
				outboxDomain.EventTypeWeatherUpdate,
				outboxDomain.WeatherUpdatePayload{
					SubscriptionID: subscription.ID.String(),
					UserID:         subscription.UserID,
					Location:       subscription.Location,
					TemperatureC:   reading.TemperatureC,
					Condition:      reading.Condition,
					ObservedAt:     reading.ObservedAt,
				},
			)
			if err != nil {
				return err
			}

			if err := w.outboxRepo.Create(ctx, event); err != nil {
				return err
			}
		}

		notifications = len(subscriptions)
		return nil
	})
	if err != nil {
		w.logger.Error("failed to store weather reading",
			slog.String("location", location),
			slog.String("error", err.Error()),
		)
		result.Error = err.Error()
		return result
	}

	result.Fetched = true
	result.Notifications = notifications
	return result
}

// utcDay truncates a time to its UTC calendar day.
func utcDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewWeatherUseCase creates a new WeatherUseCase with the provided
// dependencies.
func NewWeatherUseCase(
	txManager database.TxManager,
	readingRepo WeatherReadingRepository,
	subscriptionRepo SubscriptionReader,
	outboxRepo OutboxEventRepository,
	provider weatherService.Provider,
	config Config,
	logger *slog.Logger,
) WeatherUseCase {
	if config.PollConcurrency < 1 {
		config.PollConcurrency = 1
	}

	return &weatherUseCase{
		txManager:        txManager,
		readingRepo:      readingRepo,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		provider:         provider,
		config:           config,
		logger:           logger,
	}
}
