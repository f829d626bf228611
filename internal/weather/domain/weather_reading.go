// Package domain contains weather domain entities and business rules.
//
// A weather reading is one observation fetched from the upstream provider for
// a subscribed location. Readings are insert-only; the latest reading serves
// current-conditions requests and the recent history feeds the per-day
// forecast aggregation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Forecast window bounds, in calendar days.
const (
	MinForecastDays = 1
	MaxForecastDays = 14
)

// WeatherReading represents one stored observation for a location.
type WeatherReading struct {
	// ID is the unique identifier for the reading.
	ID uuid.UUID
	// Location is the place the reading describes, as the user subscribed it.
	Location string
	// TemperatureC is the air temperature in degrees Celsius.
	TemperatureC float64
	// Humidity is the relative humidity in percent.
	Humidity int
	// WindKph is the wind speed in kilometers per hour.
	WindKph float64
	// Condition is the provider's short condition label (Clear, Rain, Snow).
	Condition string
	// ObservedAt is when the provider measured the conditions.
	ObservedAt time.Time
	// Source names the provider the reading came from.
	Source string
	// CreatedAt is when the reading was stored.
	CreatedAt time.Time
}

// DailyForecast aggregates the stored readings of one UTC calendar day.
type DailyForecast struct {
	// Date is the UTC midnight of the aggregated day.
	Date time.Time
	// MinTemperatureC is the lowest temperature observed that day.
	MinTemperatureC float64
	// MaxTemperatureC is the highest temperature observed that day.
	MaxTemperatureC float64
	// Samples is the number of readings aggregated into the day.
	Samples int
}
