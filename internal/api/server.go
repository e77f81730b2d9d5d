// Package api exposes the activity registry over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/models"
)

// activityRegistry is the registry surface the handlers use.
type activityRegistry interface {
	List() map[string]models.Activity
	Enroll(activityName, email string) (string, error)
	Withdraw(activityName, email string) (string, error)
	Len() int
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	registry  activityRegistry
	obs       *observability.Observability
	logger    logger.Logger
	startTime time.Time
}

func NewServer(cfg *config.Config, registry activityRegistry, obs *observability.Observability, log logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if obs == nil {
		obs = observability.Noop()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		echo:      e,
		config:    cfg,
		registry:  registry,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "http"}),
		startTime: time.Now(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on the configured address until Shutdown is called.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Server.Address,
		ReadTimeout:  config.GetDuration(s.config.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(s.config.Server.WriteTimeout),
	}
	s.logger.Info("starting server", map[string]interface{}{"address": srv.Addr})
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
