package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when the login pair does not match the administrator.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingSession is returned when a protected call carries no session token.
	ErrMissingSession = errors.New("unauthorized")
	// ErrInvalidSession is returned when the session token is forged, expired or revoked.
	ErrInvalidSession = errors.New("invalid token")
	// ErrInvalidPatch is returned when an update body does not match the project shape.
	ErrInvalidPatch = errors.New("invalid project patch")
	// ErrStorage is returned when the project store is unreachable or rejects a write.
	ErrStorage = errors.New("storage error")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage failures keep
// their cause out of the response body.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingSession):
		return NewHTTPError(http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidSession):
		return NewHTTPError(http.StatusForbidden, "Invalid token", "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidPatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PATCH")
	case errors.Is(err, ErrStorage):
		return NewHTTPError(http.StatusInternalServerError, ErrStorage.Error(), "STORAGE_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
