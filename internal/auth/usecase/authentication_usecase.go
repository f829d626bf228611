package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
	authService "github.com/allisson/weathervane/internal/auth/service"
)

// touchTimeout bounds the asynchronous last-used update so a slow database
// cannot pile up goroutines behind the authentication path.
const touchTimeout = 5 * time.Second

// authenticationUseCase implements AuthenticationUseCase for both credential forms.
type authenticationUseCase struct {
	apiTokenRepo     ApiTokenRepository
	tokenService     authService.TokenService
	identityVerifier authService.IdentityVerifier
	logger           *slog.Logger
}

// Authenticate resolves a raw credential into a Principal.
//
// The credential is classified by shape first: signed identity tokens are
// verified against the federated issuer, opaque API tokens are hashed and
// looked up by hash. Verification failures of either form collapse into
// ErrInvalidCredentials, so a caller cannot distinguish an unknown token from
// a revoked or expired one. The underlying cause is logged at debug level.
func (a *authenticationUseCase) Authenticate(
	ctx context.Context,
	rawCredential string,
) (*authDomain.Principal, error) {
	credential, err := authDomain.ClassifyCredential(rawCredential)
	if err != nil {
		return nil, err
	}

	switch credential.Kind {
	case authDomain.CredentialKindIdentityToken:
		return a.authenticateIdentityToken(ctx, credential.Raw)
	default:
		return a.authenticateApiToken(ctx, credential.Raw)
	}
}

// authenticateIdentityToken verifies a federated identity token and maps its
// subject onto a principal.
func (a *authenticationUseCase) authenticateIdentityToken(
	ctx context.Context,
	rawToken string,
) (*authDomain.Principal, error) {
	claims, err := a.identityVerifier.Verify(ctx, rawToken)
	if err != nil {
		a.logger.Debug("identity token verification failed", slog.Any("error", err))
		return nil, authDomain.ErrInvalidCredentials
	}

	return &authDomain.Principal{
		UserID:   claims.Subject,
		AuthType: authDomain.AuthTypeCognito,
	}, nil
}

// authenticateApiToken hashes the opaque token, looks it up and checks it is
// still usable. Usage is recorded off the request path.
func (a *authenticationUseCase) authenticateApiToken(
	ctx context.Context,
	rawToken string,
) (*authDomain.Principal, error) {
	tokenHash := a.tokenService.HashToken(rawToken)

	token, err := a.apiTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrApiTokenNotFound) {
			a.logger.Debug("api token lookup missed")
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.IsUsable(time.Now().UTC()) {
		a.logger.Debug("api token is revoked or expired",
			slog.String("token_id", token.ID.String()),
		)
		return nil, authDomain.ErrInvalidCredentials
	}

	// Record usage in the background; authentication never waits on it
	go a.touchLastUsed(token.ID)

	return &authDomain.Principal{
		UserID:   token.UserID,
		AuthType: authDomain.AuthTypeApiKey,
		TokenID:  &token.ID,
	}, nil
}

// touchLastUsed updates the token's last-used timestamp with its own context
// since the request context is gone by the time it runs. Failures are logged
// and dropped.
func (a *authenticationUseCase) touchLastUsed(tokenID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
	defer cancel()

	if err := a.apiTokenRepo.TouchLastUsed(ctx, tokenID, time.Now().UTC()); err != nil {
		a.logger.Error("failed to record api token usage",
			slog.String("token_id", tokenID.String()),
			slog.Any("error", err),
		)
	}
}

// NewAuthenticationUseCase creates a new AuthenticationUseCase with the provided dependencies.
func NewAuthenticationUseCase(
	apiTokenRepo ApiTokenRepository,
	tokenService authService.TokenService,
	identityVerifier authService.IdentityVerifier,
	logger *slog.Logger,
) AuthenticationUseCase {
	return &authenticationUseCase{
		apiTokenRepo:     apiTokenRepo,
		tokenService:     tokenService,
		identityVerifier: identityVerifier,
		logger:           logger,
	}
}
