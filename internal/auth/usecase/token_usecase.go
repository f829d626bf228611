// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
	authService "github.com/allisson/weathervane/internal/auth/service"
	apperrors "github.com/allisson/weathervane/internal/errors"
)

// tokenUseCase implements TokenUseCase interface for managing API tokens.
type tokenUseCase struct {
	apiTokenRepo ApiTokenRepository
	tokenService authService.TokenService
}

// Issue generates a new API token owned by the user.
//
// This method:
// 1. Validates the token name and the optional expiry window
// 2. Generates the token and its SHA-256 hash
// 3. Stores the hash, the name and a short display prefix (never the plaintext)
// 4. Returns the plain token to the caller (only shown once)
func (t *tokenUseCase) Issue(
	ctx context.Context,
	userID string,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	if strings.TrimSpace(issueTokenInput.Name) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token name must not be blank")
	}
	if len(issueTokenInput.Name) > authDomain.MaxNameLength {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token name must be at most 255 characters")
	}
	if issueTokenInput.ExpiresInDays != nil {
		days := *issueTokenInput.ExpiresInDays
		if days < authDomain.MinExpiresInDays || days > authDomain.MaxExpiresInDays {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token expiry must be between 1 and 365 days")
		}
	}

	// Generate a new token
	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var expiresAt *time.Time
	if issueTokenInput.ExpiresInDays != nil {
		expiry := now.Add(time.Duration(*issueTokenInput.ExpiresInDays) * 24 * time.Hour)
		expiresAt = &expiry
	}

	// Create the token entity
	token := &authDomain.ApiToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		TokenHash: tokenHash,
		Name:      issueTokenInput.Name,
		Prefix:    t.tokenService.DisplayPrefix(plainToken),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	// Persist the token
	if err := t.apiTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// Return the plain token
	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		Token:      token,
	}, nil
}

// List retrieves the user's tokens, newest first.
func (t *tokenUseCase) List(ctx context.Context, userID string) ([]*authDomain.ApiToken, error) {
	tokens, err := t.apiTokenRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api tokens")
	}

	return tokens, nil
}

// Revoke disables a token after confirming the caller owns it.
//
// Unlike authentication, lifecycle operations report granular errors: the
// caller is already authenticated, so a missing token surfaces as
// ErrApiTokenNotFound and another user's token as ErrApiTokenForbidden.
// Revoking an already revoked token succeeds.
func (t *tokenUseCase) Revoke(ctx context.Context, userID string, tokenID uuid.UUID) error {
	// Verify the token exists first
	token, err := t.apiTokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		return err
	}

	// Verify ownership before mutating anything
	if token.UserID != userID {
		return authDomain.ErrApiTokenForbidden
	}

	// Revoke the token
	return t.apiTokenRepo.Revoke(ctx, tokenID)
}

// CleanupExpired deletes tokens that expired more than the specified number of days ago.
// Returns the number of deleted tokens. Use dryRun=true to preview count without deletion.
func (t *tokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.New("days must be non-negative")
	}

	// Calculate the cutoff timestamp (days ago from now in UTC)
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		// In dry run mode, count expired tokens without deleting
		return t.apiTokenRepo.CountExpired(ctx, cutoff)
	}

	// Delete expired tokens
	return t.apiTokenRepo.DeleteExpired(ctx, cutoff)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	apiTokenRepo ApiTokenRepository,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		apiTokenRepo: apiTokenRepo,
		tokenService: tokenService,
	}
}
