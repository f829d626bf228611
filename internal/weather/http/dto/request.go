// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
	customValidation "github.com/allisson/weathervane/internal/validation"
)

// WeatherQueryRequest contains the query parameters shared by the weather
// read endpoints. Locations follow the same bounds as subscriptions.
type WeatherQueryRequest struct {
	Location string `json:"location"`
}

// Validate checks if the weather query is valid.
func (r *WeatherQueryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Location,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, subscriptionDomain.MaxLocationLength),
		),
	)
}
