// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
)

// ApiTokenResponse represents an API token in API responses (excludes the hash).
type ApiTokenResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Revoked    bool       `json:"revoked"`
}

// MapApiTokenToResponse converts a domain API token to an API response.
func MapApiTokenToResponse(token *authDomain.ApiToken) ApiTokenResponse {
	return ApiTokenResponse{
		ID:         token.ID.String(),
		UserID:     token.UserID,
		Name:       token.Name,
		Prefix:     token.Prefix,
		CreatedAt:  token.CreatedAt,
		LastUsedAt: token.LastUsedAt,
		ExpiresAt:  token.ExpiresAt,
		Revoked:    token.Revoked,
	}
}

// ListApiTokensResponse represents a list of API tokens in API responses.
type ListApiTokensResponse struct {
	Tokens []ApiTokenResponse `json:"tokens"`
}

// MapApiTokensToListResponse converts a slice of domain API tokens to a list API response.
func MapApiTokensToListResponse(tokens []*authDomain.ApiToken) ListApiTokensResponse {
	tokenResponses := make([]ApiTokenResponse, 0, len(tokens))
	for _, token := range tokens {
		tokenResponses = append(tokenResponses, MapApiTokenToResponse(token))
	}
	return ListApiTokensResponse{
		Tokens: tokenResponses,
	}
}

// IssueTokenResponse contains the result of issuing a new API token.
// SECURITY: The token is only returned once and must be saved securely.
type IssueTokenResponse struct {
	Token     string           `json:"token"` //nolint:gosec // returned once on creation
	TokenInfo ApiTokenResponse `json:"token_info"`
}

// MapIssueOutputToResponse converts a domain issue token output to an API response.
func MapIssueOutputToResponse(output *authDomain.IssueTokenOutput) IssueTokenResponse {
	return IssueTokenResponse{
		Token:     output.PlainToken,
		TokenInfo: MapApiTokenToResponse(output.Token),
	}
}
