// Package errors provides the standardized error type returned by the activity
// registry and rendered by the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeNotSignedUp      ErrorCode = "NOT_SIGNED_UP"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Kind groups error codes by how a caller should react to them.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// Client-facing messages. These strings are part of the HTTP contract.
const (
	MsgActivityNotFound = "Activity not found"
	MsgAlreadySignedUp  = "Student already signed up"
	MsgNotSignedUp      = "Student not found in activity"
	MsgEmailRequired    = "email query parameter is required"
	MsgInternal         = "Internal server error"
)

// Sentinels for errors.Is. A *StandardError matches the sentinel carrying the same code.
var (
	ErrActivityNotFound = &StandardError{Code: ErrCodeActivityNotFound, Message: MsgActivityNotFound}
	ErrAlreadySignedUp  = &StandardError{Code: ErrCodeAlreadySignedUp, Message: MsgAlreadySignedUp}
	ErrNotSignedUp      = &StandardError{Code: ErrCodeNotSignedUp, Message: MsgNotSignedUp}
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches on code so that freshly built errors compare equal to the sentinels.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Kind returns the category of the error code.
func (e *StandardError) Kind() Kind {
	return GetErrorKind(e.Code)
}

// HTTPStatus maps the error onto a response status. Conflicts are reported as 400
// to stay compatible with existing clients of the service.
func (e *StandardError) HTTPStatus() int {
	switch e.Kind() {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds a metadata field (chainable).
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// GetErrorKind returns the kind for a code. Unknown codes are internal.
func GetErrorKind(code ErrorCode) Kind {
	switch code {
	case ErrCodeActivityNotFound:
		return KindNotFound
	case ErrCodeAlreadySignedUp, ErrCodeNotSignedUp:
		return KindConflict
	case ErrCodeInvalidRequest:
		return KindValidation
	default:
		return KindInternal
	}
}

// NewActivityNotFoundError is returned for operations on an unknown activity name.
func NewActivityNotFoundError(activity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   MsgActivityNotFound,
		Details:   fmt.Sprintf("activity: %s", activity),
		Metadata:  map[string]interface{}{"activity": activity},
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadySignedUpError is returned when enrolling an email already on the roster.
func NewAlreadySignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadySignedUp,
		Message:   MsgAlreadySignedUp,
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

// NewNotSignedUpError is returned when withdrawing an email missing from the roster.
func NewNotSignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotSignedUp,
		Message:   MsgNotSignedUp,
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError reports malformed caller input.
func NewInvalidRequestError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(cause error) *StandardError {
	se := &StandardError{
		Code:      ErrCodeInternal,
		Message:   MsgInternal,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
	if cause != nil {
		se.Details = cause.Error()
	}
	return se
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Kind() == KindNotFound
}

// IsConflict reports whether err is a roster conflict.
func IsConflict(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Kind() == KindConflict
}
