// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"mergington-activities/internal/common/metrics"
)

// Logger is the subset of logger.Logger the error middleware needs.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// DetailResponse is the JSON envelope for every error response.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Middleware converts errors returned by handlers into {"detail": ...} responses.
// Echo's own HTTP errors (unknown route, wrong method) get the same envelope.
func Middleware(log Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			if c.Response().Committed {
				return err
			}

			var httpErr *echo.HTTPError
			if stderrors.As(err, &httpErr) {
				metrics.HTTPErrorsTotal.WithLabelValues(string(kindForStatus(httpErr.Code))).Inc()
				return writeDetail(c, httpErr.Code, httpErrorMessage(httpErr))
			}

			stdErr := Normalize(err)
			metrics.HTTPErrorsTotal.WithLabelValues(string(stdErr.Kind())).Inc()
			logError(log, c, stdErr)
			return writeDetail(c, stdErr.HTTPStatus(), stdErr.Message)
		}
	}
}

func writeDetail(c echo.Context, status int, message string) error {
	if err := c.JSON(status, DetailResponse{Detail: message}); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		return msg
	}
	return http.StatusText(httpErr.Code)
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusConflict:
		return KindConflict
	case http.StatusMethodNotAllowed, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindInternal
	}
}

func logError(log Logger, c echo.Context, err *StandardError) {
	if log == nil {
		return
	}
	fields := map[string]interface{}{
		"errorCode": string(err.Code),
		"message":   err.Message,
		"path":      c.Request().URL.Path,
		"method":    c.Request().Method,
		"status":    err.HTTPStatus(),
	}
	for k, v := range err.Metadata {
		fields[k] = v
	}

	switch err.Kind() {
	case KindNotFound, KindValidation:
		log.Info("request rejected", fields)
	case KindConflict:
		log.Warn("roster conflict", fields)
	default:
		if err.Cause != nil {
			fields["cause"] = err.Cause.Error()
		}
		log.Error("internal error", fields)
	}
}
