// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
)

// MockWeatherUseCase is a mock implementation of WeatherUseCase for testing.
type MockWeatherUseCase struct {
	mock.Mock
}

// Current mocks the Current method of WeatherUseCase.
func (m *MockWeatherUseCase) Current(
	ctx context.Context,
	location string,
) (*weatherDomain.WeatherReading, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherDomain.WeatherReading), args.Error(1)
}

// Forecast mocks the Forecast method of WeatherUseCase.
func (m *MockWeatherUseCase) Forecast(
	ctx context.Context,
	location string,
	days int,
) ([]*weatherDomain.DailyForecast, error) {
	args := m.Called(ctx, location, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*weatherDomain.DailyForecast), args.Error(1)
}

// PollOnce mocks the PollOnce method of WeatherUseCase.
func (m *MockWeatherUseCase) PollOnce(
	ctx context.Context,
) ([]*weatherDomain.PollLocationResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*weatherDomain.PollLocationResult), args.Error(1)
}
