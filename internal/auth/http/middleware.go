package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/weathervane/internal/auth/usecase"
	"github.com/allisson/weathervane/internal/httputil"
)

// AuthenticationMiddleware authenticates every request from the Authorization header.
//
// The middleware:
// 1. Extracts the credential from the Authorization header, stripping an
//    optional Bearer scheme (case-insensitive)
// 2. Resolves it into a principal via AuthenticationUseCase.Authenticate()
// 3. Stores the principal in the request context for downstream handlers
//
// Both credential forms travel through the same header: federated identity
// tokens and opaque API tokens. Classification happens in the use case, so
// this layer stays a thin adapter.
//
// Error handling:
//   - Missing or unrecognizable credential → 400 Bad Request
//   - Failed verification (unknown, revoked, expired, bad signature) → 401 Unauthorized
//   - Infrastructure failures → 500 Internal Server Error
//
// Every request is verified from scratch; authentication decisions are never
// cached, so a revocation takes effect on the very next request.
func AuthenticationMiddleware(
	authenticationUseCase authUseCase.AuthenticationUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawCredential := c.GetHeader("Authorization")

		// Strip the Bearer scheme when present (case-insensitive)
		const bearerPrefix = "bearer "
		if len(rawCredential) >= len(bearerPrefix) &&
			strings.EqualFold(rawCredential[:len(bearerPrefix)], bearerPrefix) {
			rawCredential = rawCredential[len(bearerPrefix):]
		}

		principal, err := authenticationUseCase.Authenticate(c.Request.Context(), rawCredential)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store the authenticated principal in context
		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", principal.UserID),
			slog.String("auth_type", principal.AuthType))

		// Continue to next handler
		c.Next()
	}
}
