package domain

import "time"

// SubscriptionEventPayload is carried by subscription.created and
// subscription.deleted events.
type SubscriptionEventPayload struct {
	SubscriptionID string `json:"subscription_id"`
	UserID         string `json:"user_id"`
	Location       string `json:"location"`
}

// WeatherUpdatePayload is carried by notification.weather_update events, one
// per subscriber of a polled location.
type WeatherUpdatePayload struct {
	SubscriptionID string    `json:"subscription_id"`
	UserID         string    `json:"user_id"`
	Location       string    `json:"location"`
	TemperatureC   float64   `json:"temperature_c"`
	Condition      string    `json:"condition"`
	ObservedAt     time.Time `json:"observed_at"`
}
