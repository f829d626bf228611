// Package service provides the client for the upstream weather data provider.
//
// The provider is rate limited and retried with backoff; callers only see the
// domain reading or a classified error.
package service

import (
	"context"

	"github.com/allisson/weathervane/internal/weather/domain"
)

// Provider fetches current weather conditions from the upstream data source.
type Provider interface {
	// Fetch retrieves the current conditions for a location and maps them to
	// a domain reading. A location the provider does not know surfaces as
	// domain.ErrLocationNotFound.
	Fetch(ctx context.Context, location string) (*domain.WeatherReading, error)
}
