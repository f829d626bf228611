// Package service provides technical services for authentication operations.
//
// This package implements API token generation and hashing, plus federated
// identity token verification against the external OIDC provider.
package service

import "context"

// TokenService defines operations for API token generation and hashing.
// Implementations must use cryptographically secure random generation and a
// deterministic hash suitable for indexed lookup (SHA-256).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token
	// carrying the service prefix. Returns both the plain text token (to be
	// shared with the caller) and the hashed version (to be stored in the
	// database).
	//
	// The plain token should be treated as sensitive data and only displayed
	// once during token issuance.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	// Used for token verification by comparing hashes.
	HashToken(plainToken string) string

	// DisplayPrefix returns the leading characters of a plain token that are
	// safe to retain and display after issuance.
	DisplayPrefix(plainToken string) string
}

// IdentityClaims carries the verified claims extracted from an identity token.
type IdentityClaims struct {
	// Subject is the identity provider's stable user identifier.
	Subject string
}

// IdentityVerifier verifies federated identity tokens minted by the external
// OIDC provider. Implementations cache the provider's signing keys
// process-wide and refresh them when a token references an unknown key ID.
type IdentityVerifier interface {
	// Verify checks the token signature against the provider's current
	// signing keys, the audience, the expiry, and that the token is an
	// identity token rather than an access token. Returns the verified
	// claims on success.
	Verify(ctx context.Context, rawToken string) (*IdentityClaims, error)
}
