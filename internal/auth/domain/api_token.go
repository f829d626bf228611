// Package domain defines authentication domain models and business logic.
//
// It supports two credential forms: federated identity tokens minted by an
// external OIDC provider, and long-lived opaque API tokens issued by this
// service. API tokens are stored only as SHA-256 digests; the plaintext is
// disclosed exactly once at issuance.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expiry bounds for the optional API token TTL, expressed in days.
const (
	MinExpiresInDays = 1
	MaxExpiresInDays = 365
)

// MaxNameLength is the longest accepted token name.
const MaxNameLength = 255

// DisplayPrefixLength is the number of leading plaintext characters retained
// for display after issuance.
const DisplayPrefixLength = 12

// ApiToken represents a long-lived opaque API token owned by a single user.
// The plaintext is never stored; TokenHash is the only persisted form.
type ApiToken struct {
	ID         uuid.UUID  // Unique identifier (UUIDv7)
	UserID     string     // Identity provider subject that owns the token
	TokenHash  string     // SHA-256 hex digest of the full plaintext
	Name       string     // Human-readable label chosen by the owner
	Prefix     string     // Leading plaintext characters, safe to display forever
	CreatedAt  time.Time  // Immutable creation timestamp
	LastUsedAt *time.Time // Last successful verification (nil if never used)
	ExpiresAt  *time.Time // Expiry instant (nil means the token never expires)
	Revoked    bool       // Monotonic: once true, never back to false
}

// IsExpired reports whether the token is past its expiry at the given instant.
// Tokens without an expiry never expire.
func (t *ApiToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// IsUsable reports whether the token can still authenticate requests.
func (t *ApiToken) IsUsable(now time.Time) bool {
	return !t.Revoked && !t.IsExpired(now)
}

// IssueTokenInput contains the parameters for issuing a new API token.
type IssueTokenInput struct {
	Name          string // Human-readable label, must be non-blank
	ExpiresInDays *int   // Optional TTL in days (MinExpiresInDays to MaxExpiresInDays)
}

// IssueTokenOutput contains the result of issuing a new API token.
// SECURITY: PlainToken is only returned once and must be securely transmitted
// to the caller. It will never be retrievable again after this response.
type IssueTokenOutput struct {
	PlainToken string    // Plain text token (transmit securely, never log)
	Token      *ApiToken // The persisted record, hash included
}
