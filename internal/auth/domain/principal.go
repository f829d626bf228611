package domain

import "github.com/google/uuid"

// AuthType values identify which credential form authenticated a request.
const (
	// AuthTypeCognito marks requests authenticated with a federated identity token.
	AuthTypeCognito = "cognito"

	// AuthTypeApiKey marks requests authenticated with an opaque API token.
	AuthTypeApiKey = "apikey"
)

// Principal is the request-scoped authenticated identity. It is derived from a
// verified credential, carried in the request context, and never persisted.
type Principal struct {
	UserID   string     // Identity provider subject
	AuthType string     // AuthTypeCognito or AuthTypeApiKey
	TokenID  *uuid.UUID // ID of the API token used, set only for AuthTypeApiKey
}
