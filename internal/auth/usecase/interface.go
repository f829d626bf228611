// Package usecase defines business logic interfaces for authentication and API token operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
)

// ApiTokenRepository defines persistence operations for API tokens.
// Implementations must support transaction-aware operations via context propagation.
type ApiTokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *authDomain.ApiToken) error

	// GetByID retrieves a token by ID. Returns ErrApiTokenNotFound if not found.
	GetByID(ctx context.Context, tokenID uuid.UUID) (*authDomain.ApiToken, error)

	// GetByTokenHash retrieves a token by its SHA-256 hash. Returns
	// ErrApiTokenNotFound if no token matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.ApiToken, error)

	// ListByUserID retrieves all tokens owned by a user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*authDomain.ApiToken, error)

	// Revoke marks a token as revoked. Revoking a revoked token is a no-op.
	Revoke(ctx context.Context, tokenID uuid.UUID) error

	// TouchLastUsed records when a token last authenticated a request.
	TouchLastUsed(ctx context.Context, tokenID uuid.UUID, usedAt time.Time) error

	// CountExpired counts tokens whose expiry passed before the cutoff.
	CountExpired(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteExpired removes tokens whose expiry passed before the cutoff and
	// returns the number removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenUseCase defines lifecycle operations for a user's API tokens. Every
// operation is scoped to the calling user: listing returns only their tokens
// and revocation requires ownership.
type TokenUseCase interface {
	// Issue creates a new API token owned by the user.
	//
	// Returns the plain token together with its metadata. The plain token is
	// only returned once and should be securely transmitted to the caller; only
	// its SHA-256 hash is stored.
	//
	// Returns ErrInvalidInput wrapped errors when the name is blank or longer
	// than MaxNameLength, or when the optional expiry falls outside
	// MinExpiresInDays..MaxExpiresInDays.
	Issue(
		ctx context.Context,
		userID string,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// List retrieves the user's tokens, newest first. Revoked and expired
	// tokens are included so the owner can see their full inventory.
	List(ctx context.Context, userID string) ([]*authDomain.ApiToken, error)

	// Revoke disables a token after confirming the caller owns it. Revoking an
	// already revoked token succeeds.
	//
	// Returns ErrApiTokenNotFound if the token doesn't exist and
	// ErrApiTokenForbidden if it belongs to another user.
	Revoke(ctx context.Context, userID string, tokenID uuid.UUID) error

	// CleanupExpired deletes tokens that expired more than the specified number
	// of days ago. Returns the number of deleted tokens. Use dryRun=true to
	// preview the count without deletion.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}

// AuthenticationUseCase resolves a raw request credential into a Principal.
type AuthenticationUseCase interface {
	// Authenticate classifies the raw credential by shape, verifies it and
	// returns the authenticated principal.
	//
	// Malformed credentials surface as ErrBadRequest wrapped errors before any
	// verification runs. All verification failures (unknown, revoked or expired
	// tokens, bad signatures) collapse into ErrInvalidCredentials.
	Authenticate(ctx context.Context, rawCredential string) (*authDomain.Principal, error)
}
