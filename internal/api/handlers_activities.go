package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"mergington-activities/internal/activities"
	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/models"
)

const staticIndexPath = "/static/index.html"

func (s *Server) registerActivityRoutes() {
	s.echo.GET("/activities", s.handleListActivities)
	s.echo.POST("/activities/:activity_name/signup", s.handleSignup)
	s.echo.POST("/activities/:activity_name/unregister", s.handleUnregister)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.Redirect(http.StatusTemporaryRedirect, staticIndexPath)
}

func (s *Server) handleListActivities(c echo.Context) error {
	if err := c.JSON(http.StatusOK, s.registry.List()); err != nil {
		return fmt.Errorf("failed to write activities response: %w", err)
	}
	return nil
}

func (s *Server) handleSignup(c echo.Context) error {
	return s.mutateRoster(c, activities.OperationEnroll, s.registry.Enroll)
}

func (s *Server) handleUnregister(c echo.Context) error {
	return s.mutateRoster(c, activities.OperationWithdraw, s.registry.Withdraw)
}

func (s *Server) mutateRoster(c echo.Context, operation string, op func(activityName, email string) (string, error)) error {
	activityName := activityParam(c)

	if !c.QueryParams().Has("email") {
		return apperrors.NewInvalidRequestError(apperrors.MsgEmailRequired).
			WithMetadata("activity", activityName)
	}
	email := c.QueryParam("email")

	start := time.Now()
	msg, err := op(activityName, email)
	status := "success"
	if err != nil {
		status = string(apperrors.Normalize(err).Kind())
	}
	s.obs.RecordOperation(c.Request().Context(), operation, status, time.Since(start))
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, models.MessageResponse{Message: msg}); err != nil {
		return fmt.Errorf("failed to write %s response: %w", operation, err)
	}
	return nil
}

// activityParam returns the decoded activity name path segment.
func activityParam(c echo.Context) string {
	raw := c.Param("activity_name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
