package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
	weatherUsecase "github.com/allisson/weathervane/internal/weather/usecase"
)

// RunPollWeather fetches current weather for every location with at least one
// subscriber, stores the readings and enqueues notification events. Failed
// locations are reported without aborting the rest.
//
// Requirements: Database must be migrated and accessible.
func RunPollWeather(
	ctx context.Context,
	weatherUseCase weatherUsecase.WeatherUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("polling weather for subscribed locations")

	results, err := weatherUseCase.PollOnce(ctx)
	if err != nil {
		return fmt.Errorf("failed to poll weather: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputPollWeatherJSON(writer, results)
	} else {
		outputPollWeatherText(writer, results)
	}

	fetched := 0
	for _, result := range results {
		if result.Fetched {
			fetched++
		}
	}

	logger.Info("poll completed",
		slog.Int("locations", len(results)),
		slog.Int("fetched", fetched),
	)

	return nil
}

// outputPollWeatherText outputs per-location results in human-readable text format.
func outputPollWeatherText(writer io.Writer, results []*weatherDomain.PollLocationResult) {
	if len(results) == 0 {
		fmt.Fprintln(writer, "No subscribed locations to poll")
		return
	}

	for _, result := range results {
		if result.Error != "" {
			fmt.Fprintf(writer, "%s: failed (%s)\n", result.Location, result.Error)
			continue
		}
		fmt.Fprintf(writer, "%s: fetched, %d notification(s) queued\n", result.Location, result.Notifications)
	}
}

// outputPollWeatherJSON outputs per-location results in JSON format for machine consumption.
func outputPollWeatherJSON(writer io.Writer, results []*weatherDomain.PollLocationResult) {
	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
