package domain

import (
	"github.com/allisson/weathervane/internal/errors"
)

// Authentication and token lifecycle errors.
var (
	// ErrCredentialMissing indicates the request carried no bearer credential.
	ErrCredentialMissing = errors.Wrap(errors.ErrBadRequest, "authorization credential is missing")

	// ErrCredentialFormat indicates the credential matches no supported form.
	ErrCredentialFormat = errors.Wrap(errors.ErrBadRequest, "credential format not recognized")

	// ErrInvalidCredentials indicates the credential failed verification.
	// Lookup misses, revoked or expired tokens, and signature failures all
	// collapse into this single error.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrApiTokenNotFound indicates an API token with the specified ID was not found.
	ErrApiTokenNotFound = errors.Wrap(errors.ErrNotFound, "api token not found")

	// ErrApiTokenForbidden indicates the API token belongs to another user.
	ErrApiTokenForbidden = errors.Wrap(errors.ErrForbidden, "api token belongs to another user")
)
