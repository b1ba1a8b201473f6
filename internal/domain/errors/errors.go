package errors

import (
	"net/http"

	"terrimap/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches on the business error code so that WithDetails copies still
// satisfy errors.Is against the predefined sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return other.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Editing errors
	ErrUnsupportedGeometry = NewBaseError(
		http.StatusUnprocessableEntity,
		"UNSUPPORTED_GEOMETRY",
		"geometry type cannot be saved as a territory or location",
		"",
	)

	ErrMissingJoinKey = NewBaseError(
		http.StatusBadRequest,
		"MISSING_JOIN_KEY",
		"feature has no persisted id",
		"",
	)

	ErrToolkitNotReady = NewBaseError(
		http.StatusServiceUnavailable,
		"TOOLKIT_NOT_READY",
		"drawing toolkit is not attached",
		"",
	)

	ErrEditInProgress = NewBaseError(
		http.StatusConflict,
		"EDIT_IN_PROGRESS",
		"another edit must be saved or cancelled first",
		"",
	)

	ErrNoEditSession = NewBaseError(
		http.StatusConflict,
		"NO_EDIT_SESSION",
		"no edit is in progress",
		"",
	)

	// Remote data service errors
	ErrMutationFailed = NewBaseError(
		http.StatusBadGateway,
		"MUTATION_FAILED",
		"remote data service rejected the change",
		"",
	)

	ErrRemoteUnavailable = NewBaseError(
		http.StatusBadGateway,
		"REMOTE_UNAVAILABLE",
		"remote data service is unavailable",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrUnknownLayer = NewBaseError(
		http.StatusNotFound,
		"UNKNOWN_LAYER",
		"layer does not exist",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// RemoteStatusError reports a non-success answer from the remote data service.
type RemoteStatusError struct {
	status int
	method string
	path   string
	body   string
}

// NewRemoteStatusError creates an AppError for an unexpected remote status code.
func NewRemoteStatusError(status int, method, path, body string) AppError {
	return &RemoteStatusError{
		status: status,
		method: method,
		path:   path,
		body:   body,
	}
}

// Error implements the error interface
func (e *RemoteStatusError) Error() string {
	return errors.Errorf("remote %s %s returned %d", e.method, e.path, e.status).Error()
}

// HTTPCode maps remote 404s through and everything else to 502.
func (e *RemoteStatusError) HTTPCode() int {
	if e.status == http.StatusNotFound {
		return http.StatusNotFound
	}

	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *RemoteStatusError) ErrorCode() string {
	if e.status == http.StatusNotFound {
		return "NOT_FOUND"
	}

	return "REMOTE_STATUS"
}

// Message returns the user-friendly error message
func (e *RemoteStatusError) Message() string {
	return "remote data service returned an error"
}

// Details returns the truncated remote body
func (e *RemoteStatusError) Details() string {
	return e.body
}

// StatusCode returns the raw remote status code
func (e *RemoteStatusError) StatusCode() int {
	return e.status
}
