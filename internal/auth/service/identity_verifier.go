package service

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"

	apperrors "github.com/allisson/weathervane/internal/errors"
)

// identityVerifier implements IdentityVerifier using go-oidc. The underlying
// remote key set caches the provider's JWKS process-wide and refetches it when
// a token references an unknown key ID.
type identityVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewIdentityVerifier discovers the OIDC provider configuration from the
// issuer URL and builds a verifier bound to the expected client ID. Discovery
// performs a network round trip, so the given context should carry a deadline.
func NewIdentityVerifier(ctx context.Context, issuerURL, clientID string) (IdentityVerifier, error) {
	if issuerURL == "" {
		return nil, apperrors.New("oidc issuer URL is required")
	}
	if clientID == "" {
		return nil, apperrors.New("oidc client ID is required")
	}

	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to discover oidc provider")
	}

	return &identityVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify checks signature, audience and expiry through go-oidc, then enforces
// that the token is an identity token carrying a subject. Identity providers
// that mint access and identity tokens from the same signing keys mark the
// difference with the token_use claim.
func (v *identityVerifier) Verify(ctx context.Context, rawToken string) (*IdentityClaims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify identity token")
	}

	var claims struct {
		TokenUse string `json:"token_use"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse identity token claims")
	}

	if claims.TokenUse != "id" {
		return nil, apperrors.New("token is not an identity token")
	}

	if idToken.Subject == "" {
		return nil, apperrors.New("identity token missing sub claim")
	}

	return &IdentityClaims{Subject: idToken.Subject}, nil
}
