package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrLinkNotFound is returned when the link record is absent.
	ErrLinkNotFound = errors.New("link not found")
	// ErrEmailTaken is returned when registering an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDuplicateLink is returned when the user already has a link with the same URL.
	ErrDuplicateLink = errors.New("link already exists")
	// ErrInvalidURL is returned when a link URL fails the URL shape check.
	ErrInvalidURL = errors.New("invalid url format")
	// ErrEmptyUpdate is returned when a profile update carries no fields.
	ErrEmptyUpdate = errors.New("at least one field is required")
	// ErrNotLinkOwner is returned when the link is not in the user's collection.
	ErrNotLinkOwner = errors.New("link not found in user's links")
	// ErrNotOwner is returned when a caller mutates a profile that is not theirs.
	ErrNotOwner = errors.New("not the owner of this profile")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrLinkNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LINK_NOT_FOUND")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrDuplicateLink:
		return NewHTTPError(http.StatusConflict, err.Error(), "LINK_EXISTS")
	case ErrInvalidURL:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_URL")
	case ErrEmptyUpdate:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_UPDATE")
	case ErrNotLinkOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_LINK_OWNER")
	case ErrNotOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
