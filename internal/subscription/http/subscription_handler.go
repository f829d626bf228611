// Package http provides HTTP handlers for subscription management operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHttp "github.com/allisson/weathervane/internal/auth/http"
	apperrors "github.com/allisson/weathervane/internal/errors"
	"github.com/allisson/weathervane/internal/httputil"
	"github.com/allisson/weathervane/internal/subscription/http/dto"
	subscriptionUseCase "github.com/allisson/weathervane/internal/subscription/usecase"
	customValidation "github.com/allisson/weathervane/internal/validation"
)

// SubscriptionHandler handles HTTP requests for subscription management
// operations. Every endpoint operates on the authenticated principal's own
// subscriptions.
type SubscriptionHandler struct {
	subscriptionUseCase subscriptionUseCase.SubscriptionUseCase
	logger              *slog.Logger
}

// NewSubscriptionHandler creates a new subscription handler with required dependencies.
func NewSubscriptionHandler(
	useCase subscriptionUseCase.SubscriptionUseCase,
	logger *slog.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: useCase,
		logger:              logger,
	}
}

// Create subscribes the authenticated principal to a location.
// POST /v1/subscriptions
// Returns 201 Created, or 409 Conflict if the subscription already exists.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	principal, ok := authHttp.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateSubscriptionRequest

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
	subscription, err := h.subscriptionUseCase.Create(c.Request.Context(), principal.UserID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSubscriptionToResponse(subscription))
}

// List retrieves the authenticated principal's subscriptions.
// GET /v1/subscriptions?offset=0&limit=50
// Returns 200 OK with subscriptions newest first.
func (h *SubscriptionHandler) List(c *gin.Context) {
	principal, ok := authHttp.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// Parse pagination parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Call use case
	subscriptions, err := h.subscriptionUseCase.List(c.Request.Context(), principal.UserID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionsToListResponse(subscriptions))
}

// Delete removes a subscription owned by the authenticated principal.
// DELETE /v1/subscriptions/:subscription_id
// Returns 204 No Content.
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	principal, ok := authHttp.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// Parse and validate UUID
	subscriptionID, err := uuid.Parse(c.Param("subscription_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid subscription ID format: must be a valid UUID"),
			h.logger)
		return
	}

	// Call use case
	if err := h.subscriptionUseCase.Delete(c.Request.Context(), principal.UserID, subscriptionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
