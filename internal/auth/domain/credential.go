package domain

import "strings"

// ApiTokenPrefix is the recognizable prefix carried by every issued API token.
const ApiTokenPrefix = "wea_"

// CredentialKind discriminates the credential forms accepted by the API.
type CredentialKind string

const (
	// CredentialKindIdentityToken is a signed identity token minted by the
	// external identity provider.
	CredentialKindIdentityToken CredentialKind = "identity_token"

	// CredentialKindApiToken is an opaque API token issued by this service.
	CredentialKindApiToken CredentialKind = "api_token"
)

// Credential is the classified form of a raw bearer credential. Classification
// happens exactly once per request; all later dispatch branches on Kind.
type Credential struct {
	Kind CredentialKind
	Raw  string
}

// ClassifyCredential sorts a raw credential string into one of the supported
// kinds. Identity tokens are recognized by the three dot-separated segments of
// a compact signed token, API tokens by their fixed prefix. Anything else is
// rejected here, before any store lookup or signature verification runs.
func ClassifyCredential(raw string) (Credential, error) {
	if raw == "" {
		return Credential{}, ErrCredentialMissing
	}

	if isSignedTokenShape(raw) {
		return Credential{Kind: CredentialKindIdentityToken, Raw: raw}, nil
	}

	if strings.HasPrefix(raw, ApiTokenPrefix) {
		return Credential{Kind: CredentialKindApiToken, Raw: raw}, nil
	}

	return Credential{}, ErrCredentialFormat
}

// isSignedTokenShape checks for the compact JWS layout: three non-empty
// segments separated by dots.
func isSignedTokenShape(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}
