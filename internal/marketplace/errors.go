package marketplace

import (
	"errors"
	"fmt"
	"strings"
)

// EndpointNotFoundCode is reported to dashboard clients for endpoint-unavailable failures.
const EndpointNotFoundCode = "ENDPOINT_NOT_FOUND"

var (
	ErrEndpointUnavailable = errors.New("marketplace: endpoint not available")
	ErrMalformedResponse   = errors.New("marketplace: malformed response body")
	ErrInvalidDecision     = errors.New("marketplace: decision must be APPROVED or REJECTED")
)

// AuthError is a login failure the dashboard shows verbatim. The package
// level values below are compared with errors.Is.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrNotAdmin           = &AuthError{Code: "NOT_ADMIN", Message: "Access denied. Admin privileges required."}
	ErrInvalidCredentials = &AuthError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	ErrUserNotFound       = &AuthError{Code: "USER_NOT_FOUND", Message: "User not found"}
)

// APIError is a non-2xx response from the marketplace API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return fmt.Sprintf("marketplace: %s: %s", e.Status, msg)
	}
	return fmt.Sprintf("marketplace: %s", e.Status)
}

// EndpointUnavailableError reports that the server has no route for a
// mutation (404 or 405), as opposed to the request itself failing.
type EndpointUnavailableError struct {
	Action     string
	StatusCode int
}

func (e *EndpointUnavailableError) Error() string {
	return fmt.Sprintf("%s endpoint not available on server", e.Action)
}

func (e *EndpointUnavailableError) Is(target error) bool {
	return target == ErrEndpointUnavailable
}
