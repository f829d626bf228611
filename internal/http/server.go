// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/weathervane/internal/config"
	"github.com/allisson/weathervane/internal/metrics"
)

// TokenHandler handles API token lifecycle endpoints.
type TokenHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Revoke(c *gin.Context)
}

// SubscriptionHandler handles subscription endpoints.
type SubscriptionHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Delete(c *gin.Context)
}

// WeatherHandler handles weather read endpoints.
type WeatherHandler interface {
	Current(c *gin.Context)
	Forecast(c *gin.Context)
}

// Routes holds the handlers and route-level middleware wired by the DI container.
type Routes struct {
	// Authentication is the gateway middleware applied to every /v1 route.
	Authentication gin.HandlerFunc
	// RateLimit is the optional per-principal rate limiter (nil when disabled).
	RateLimit gin.HandlerFunc

	Token        TokenHandler
	Subscription SubscriptionHandler
	Weather      WeatherHandler
}

// Server represents the HTTP API server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint and may be nil in tests.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the Gin router with the global middleware stack and
// all API routes. The metrics provider may be nil when metrics are disabled.
func (s *Server) SetupRouter(cfg *config.Config, metricsProvider *metrics.Provider, routes Routes) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(routes.Authentication)
	if routes.RateLimit != nil {
		v1.Use(routes.RateLimit)
	}

	v1.POST("/tokens", routes.Token.Create)
	v1.GET("/tokens", routes.Token.List)
	v1.DELETE("/tokens/:token_id", routes.Token.Revoke)

	v1.POST("/subscriptions", routes.Subscription.Create)
	v1.GET("/subscriptions", routes.Subscription.List)
	v1.DELETE("/subscriptions/:subscription_id", routes.Subscription.Delete)

	v1.GET("/weather/current", routes.Weather.Current)
	v1.GET("/weather/forecast", routes.Weather.Forecast)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// each dependency individually.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server. The router must be set up before calling Start.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
