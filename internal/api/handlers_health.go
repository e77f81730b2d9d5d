package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/ready", s.handleReady)
}

func (s *Server) handleHealth(c echo.Context) error {
	response := map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"uptime": time.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write health response: %w", err)
	}
	return nil
}

// handleReady reports ready once the registry holds at least one activity.
func (s *Server) handleReady(c echo.Context) error {
	count := s.registry.Len()
	status, code := "ready", http.StatusOK
	if count == 0 {
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	response := map[string]interface{}{
		"status":     status,
		"activities": count,
	}
	if err := c.JSON(code, response); err != nil {
		return fmt.Errorf("failed to write readiness response: %w", err)
	}
	return nil
}
