package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
	weatherMocks "github.com/allisson/weathervane/internal/weather/usecase/mocks"
)

func TestRunPollWeather(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &weatherMocks.MockWeatherUseCase{}
		mockUseCase.On("PollOnce", ctx).Return([]*weatherDomain.PollLocationResult{
			{Location: "Berlin", Fetched: true, Notifications: 2},
			{Location: "Oslo", Error: "weather provider returned status 500"},
		}, nil)

		var out bytes.Buffer
		err := RunPollWeather(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Berlin: fetched, 2 notification(s) queued")
		require.Contains(t, out.String(), "Oslo: failed (weather provider returned status 500)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("text-output-no-locations", func(t *testing.T) {
		mockUseCase := &weatherMocks.MockWeatherUseCase{}
		mockUseCase.On("PollOnce", ctx).Return([]*weatherDomain.PollLocationResult{}, nil)

		var out bytes.Buffer
		err := RunPollWeather(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No subscribed locations to poll")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &weatherMocks.MockWeatherUseCase{}
		mockUseCase.On("PollOnce", ctx).Return([]*weatherDomain.PollLocationResult{
			{Location: "Berlin", Fetched: true, Notifications: 1},
		}, nil)

		var out bytes.Buffer
		err := RunPollWeather(ctx, mockUseCase, logger, &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"location": "Berlin"`)
		require.Contains(t, out.String(), `"fetched": true`)
		require.Contains(t, out.String(), `"notifications": 1`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("poll-error", func(t *testing.T) {
		mockUseCase := &weatherMocks.MockWeatherUseCase{}
		mockUseCase.On("PollOnce", ctx).Return(nil, context.DeadlineExceeded)

		err := RunPollWeather(ctx, mockUseCase, logger, &bytes.Buffer{}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to poll weather")
		mockUseCase.AssertExpectations(t)
	})
}
