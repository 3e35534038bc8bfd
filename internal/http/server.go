// Package http provides the HTTP API for verdantd.
package http

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/insights"
	"github.com/fyrsmithlabs/verdant/internal/prompts"
	"github.com/fyrsmithlabs/verdant/internal/store"
	"github.com/fyrsmithlabs/verdant/internal/titles"
)

// Config holds HTTP server configuration.
type Config struct {
	Host        string
	Port        int
	DefaultMode insights.Mode
}

// Server provides the HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	store    store.Store
	insights *insights.Service
	titles   *titles.Service
	prompts  *prompts.Service
	metrics  *Metrics
	logger   *zap.Logger
	config   *Config
	now      func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(st store.Store, insightSvc *insights.Service, titleSvc *titles.Service, promptSvc *prompts.Service, logger *zap.Logger, cfg *Config) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8080, DefaultMode: insights.ModePrivate}
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = insights.ModePrivate
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	metrics := NewMetrics()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		store:    st,
		insights: insightSvc,
		titles:   titleSvc,
		prompts:  promptSvc,
		metrics:  metrics,
		logger:   logger,
		config:   cfg,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")

	v1.GET("/entries", s.handleListEntries)
	v1.POST("/entries", s.handleCreateEntry)
	v1.GET("/entries/:id", s.handleGetEntry)
	v1.PUT("/entries/:id", s.handleUpdateEntry)
	v1.DELETE("/entries/:id", s.handleDeleteEntry)

	v1.GET("/progress", s.handleProgress)

	v1.POST("/insights/weekly", s.handleWeeklyInsights)
	v1.POST("/insights/monthly", s.handleMonthlyInsights)

	v1.POST("/titles", s.handleGenerateTitle)

	v1.POST("/prompts/context", s.handleContextPrompt)
	v1.GET("/prompts/starter", s.handleStarterPrompt)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// resolveMode validates a wire mode string, applying the configured default
// when empty.
func (s *Server) resolveMode(raw string) (insights.Mode, error) {
	switch insights.Mode(raw) {
	case insights.ModePrivate, insights.ModeGemini:
		return insights.Mode(raw), nil
	case "":
		return s.config.DefaultMode, nil
	default:
		return "", fmt.Errorf("unknown mode %q", raw)
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
