// Package http provides HTTP handlers for weather read operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHttp "github.com/allisson/weathervane/internal/auth/http"
	apperrors "github.com/allisson/weathervane/internal/errors"
	"github.com/allisson/weathervane/internal/httputil"
	customValidation "github.com/allisson/weathervane/internal/validation"
	"github.com/allisson/weathervane/internal/weather/http/dto"
	weatherUseCase "github.com/allisson/weathervane/internal/weather/usecase"
)

// defaultForecastDays is used when the days query parameter is absent.
const defaultForecastDays = 5

// WeatherHandler handles HTTP requests for current conditions and forecasts.
type WeatherHandler struct {
	weatherUseCase weatherUseCase.WeatherUseCase
	logger         *slog.Logger
}

// NewWeatherHandler creates a new weather handler with required dependencies.
func NewWeatherHandler(
	useCase weatherUseCase.WeatherUseCase,
	logger *slog.Logger,
) *WeatherHandler {
	return &WeatherHandler{
		weatherUseCase: useCase,
		logger:         logger,
	}
}

// Current returns the freshest reading for a location.
// GET /v1/weather/current?location=Berlin
// Returns 200 OK, or 404 Not Found when the provider does not know the location.
func (h *WeatherHandler) Current(c *gin.Context) {
	if _, ok := authHttp.GetPrincipal(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	req := dto.WeatherQueryRequest{Location: c.Query("location")}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	reading, err := h.weatherUseCase.Current(c.Request.Context(), req.Location)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReadingToResponse(reading))
}

// Forecast returns the per-day aggregation for a location.
// GET /v1/weather/forecast?location=Berlin&days=5
// Returns 200 OK with one entry per UTC calendar day that has readings.
func (h *WeatherHandler) Forecast(c *gin.Context) {
	if _, ok := authHttp.GetPrincipal(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	req := dto.WeatherQueryRequest{Location: c.Query("location")}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	days := defaultForecastDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c,
				fmt.Errorf("invalid days parameter: must be an integer"),
				h.logger)
			return
		}
		days = parsed
	}

	forecasts, err := h.weatherUseCase.Forecast(c.Request.Context(), req.Location, days)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapForecastsToResponse(req.Location, forecasts))
}
