package usecase

import (
	"context"
	"time"

	"github.com/allisson/weathervane/internal/metrics"
	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
)

// weatherUseCaseWithMetrics decorates WeatherUseCase with metrics
// instrumentation.
type weatherUseCaseWithMetrics struct {
	next    WeatherUseCase
	metrics metrics.BusinessMetrics
}

// NewWeatherUseCaseWithMetrics wraps a WeatherUseCase with metrics recording.
func NewWeatherUseCaseWithMetrics(
	useCase WeatherUseCase,
	m metrics.BusinessMetrics,
) WeatherUseCase {
	return &weatherUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Current records metrics for current-conditions lookups.
func (w *weatherUseCaseWithMetrics) Current(
	ctx context.Context,
	location string,
) (*weatherDomain.WeatherReading, error) {
	start := time.Now()
	reading, err := w.next.Current(ctx, location)

	status := "success"
	if err != nil {
		status = "error"
	}

	w.metrics.RecordOperation(ctx, "weather", "weather_current", status)
	w.metrics.RecordDuration(ctx, "weather", "weather_current", time.Since(start), status)

	return reading, err
}

// Forecast records metrics for forecast aggregations.
func (w *weatherUseCaseWithMetrics) Forecast(
	ctx context.Context,
	location string,
	days int,
) ([]*weatherDomain.DailyForecast, error) {
	start := time.Now()
	forecasts, err := w.next.Forecast(ctx, location, days)

	status := "success"
	if err != nil {
		status = "error"
	}

	w.metrics.RecordOperation(ctx, "weather", "weather_forecast", status)
	w.metrics.RecordDuration(ctx, "weather", "weather_forecast", time.Since(start), status)

	return forecasts, err
}

// PollOnce records metrics for poll runs.
func (w *weatherUseCaseWithMetrics) PollOnce(
	ctx context.Context,
) ([]*weatherDomain.PollLocationResult, error) {
	start := time.Now()
	results, err := w.next.PollOnce(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	w.metrics.RecordOperation(ctx, "weather", "weather_poll", status)
	w.metrics.RecordDuration(ctx, "weather", "weather_poll", time.Since(start), status)

	return results, err
}
