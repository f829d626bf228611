// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
	customValidation "github.com/allisson/weathervane/internal/validation"
)

// CreateSubscriptionRequest contains the parameters for creating a subscription.
type CreateSubscriptionRequest struct {
	Location string `json:"location"`
}

// Validate checks if the create subscription request is valid.
func (r *CreateSubscriptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Location,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, subscriptionDomain.MaxLocationLength),
		),
	)
}

// ToInput converts the request to a domain create subscription input.
func (r *CreateSubscriptionRequest) ToInput() *subscriptionDomain.CreateSubscriptionInput {
	return &subscriptionDomain.CreateSubscriptionInput{
		Location: r.Location,
	}
}
