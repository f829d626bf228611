// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
)

// WeatherReadingResponse represents current conditions in API responses.
type WeatherReadingResponse struct {
	Location     string    `json:"location"`
	TemperatureC float64   `json:"temperature_c"`
	Humidity     int       `json:"humidity"`
	WindKph      float64   `json:"wind_kph"`
	Condition    string    `json:"condition"`
	ObservedAt   time.Time `json:"observed_at"`
	Source       string    `json:"source"`
}

// MapReadingToResponse converts a domain reading to an API response.
func MapReadingToResponse(reading *weatherDomain.WeatherReading) WeatherReadingResponse {
	return WeatherReadingResponse{
		Location:     reading.Location,
		TemperatureC: reading.TemperatureC,
		Humidity:     reading.Humidity,
		WindKph:      reading.WindKph,
		Condition:    reading.Condition,
		ObservedAt:   reading.ObservedAt,
		Source:       reading.Source,
	}
}

// DailyForecastResponse represents one aggregated day in API responses.
type DailyForecastResponse struct {
	Date            string  `json:"date"`
	MinTemperatureC float64 `json:"min_temperature_c"`
	MaxTemperatureC float64 `json:"max_temperature_c"`
	Samples         int     `json:"samples"`
}

// ForecastResponse represents a per-day forecast aggregation in API responses.
type ForecastResponse struct {
	Location string                  `json:"location"`
	Days     []DailyForecastResponse `json:"days"`
}

// MapForecastsToResponse converts domain daily forecasts to an API response.
func MapForecastsToResponse(
	location string,
	forecasts []*weatherDomain.DailyForecast,
) ForecastResponse {
	days := make([]DailyForecastResponse, 0, len(forecasts))
	for _, forecast := range forecasts {
		days = append(days, DailyForecastResponse{
			Date:            forecast.Date.Format("2006-01-02"),
			MinTemperatureC: forecast.MinTemperatureC,
			MaxTemperatureC: forecast.MaxTemperatureC,
			Samples:         forecast.Samples,
		})
	}
	return ForecastResponse{
		Location: location,
		Days:     days,
	}
}
