package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/weathervane/internal/auth/domain"
	apperrors "github.com/allisson/weathervane/internal/errors"
)

// tokenService implements TokenService using SHA-256 for token hashing.
type tokenService struct{}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The random bytes are base64 URL-encoded and prefixed with the service
// marker so credentials are recognizable on sight and in classification.
// Returns the plain token and its SHA-256 hash.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	// Generate 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	// Encode to base64 URL-safe string for text representation
	plainToken = domain.ApiTokenPrefix + base64.URLEncoding.EncodeToString(randomBytes)

	// Hash the full plaintext, prefix included
	tokenHash = t.HashToken(plainToken)

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// DisplayPrefix returns the leading characters of the plain token retained
// for display after issuance. Reveals the service marker plus a short stub,
// never enough to reconstruct the secret.
func (t *tokenService) DisplayPrefix(plainToken string) string {
	if len(plainToken) <= domain.DisplayPrefixLength {
		return plainToken
	}
	return plainToken[:domain.DisplayPrefixLength]
}

// NewTokenService creates a new TokenService instance using SHA-256 for token hashing.
func NewTokenService() TokenService {
	return &tokenService{}
}
