// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
	customValidation "github.com/allisson/weathervane/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing a new API token.
type IssueTokenRequest struct {
	Name          string `json:"name"`
	ExpiresInDays *int   `json:"expires_in_days"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, authDomain.MaxNameLength),
		),
		validation.Field(&r.ExpiresInDays,
			validation.Min(authDomain.MinExpiresInDays),
			validation.Max(authDomain.MaxExpiresInDays),
		),
	)
}

// ToInput converts the request to a domain issue token input.
func (r *IssueTokenRequest) ToInput() *authDomain.IssueTokenInput {
	return &authDomain.IssueTokenInput{
		Name:          r.Name,
		ExpiresInDays: r.ExpiresInDays,
	}
}
