package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/weathervane/internal/auth/http/dto"
	authUseCase "github.com/allisson/weathervane/internal/auth/usecase"
	apperrors "github.com/allisson/weathervane/internal/errors"
	"github.com/allisson/weathervane/internal/httputil"
	customValidation "github.com/allisson/weathervane/internal/validation"
)

// TokenHandler handles HTTP requests for API token management operations.
// Every endpoint operates on the authenticated principal's own tokens.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// Create issues a new API token for the authenticated principal.
// POST /v1/tokens
// Returns 201 Created with the plain token. The plain token is never
// stored and cannot be retrieved again.
func (h *TokenHandler) Create(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.IssueTokenRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	output, err := h.tokenUseCase.Issue(c.Request.Context(), principal.UserID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response with plain token
	c.JSON(http.StatusCreated, dto.MapIssueOutputToResponse(output))
}

// List retrieves all API tokens owned by the authenticated principal.
// GET /v1/tokens
// Returns 200 OK with token metadata. Hashes are never included.
func (h *TokenHandler) List(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// Call use case
	tokens, err := h.tokenUseCase.List(c.Request.Context(), principal.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response
	c.JSON(http.StatusOK, dto.MapApiTokensToListResponse(tokens))
}

// Revoke revokes an API token owned by the authenticated principal.
// DELETE /v1/tokens/:token_id
// Returns 204 No Content. Revoking an already revoked token is a no-op.
func (h *TokenHandler) Revoke(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// Parse and validate UUID
	tokenID, err := uuid.Parse(c.Param("token_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid token ID format: must be a valid UUID"),
			h.logger)
		return
	}

	// Call use case
	if err := h.tokenUseCase.Revoke(c.Request.Context(), principal.UserID, tokenID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
