package ksp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an API failure so callers can branch on the failure
// class instead of matching message strings.
type Kind int

const (
	// KindAPI covers error responses with no more specific classification.
	KindAPI Kind = iota
	// KindAuthentication covers 401/403 responses and failed key verification.
	KindAuthentication
	// KindValidation covers malformed caller input and 400/422 responses.
	KindValidation
	// KindNotFound covers 404 responses.
	KindNotFound
	// KindRateLimit covers 429 responses.
	KindRateLimit
	// KindNetwork covers transport-level failures: timeout, connection
	// refused, DNS, TLS.
	KindNetwork
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	default:
		return "api"
	}
}

// Error represents a failed API interaction. StatusCode is zero for
// failures that never produced an HTTP response (client-side validation,
// transport errors). Payload holds the decoded error body when the server
// returned one.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Payload    map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ksp: %s error: status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ksp: %s error: %s", e.Kind, e.Message)
}

// IsAuthentication reports whether the error is an authentication failure.
func (e *Error) IsAuthentication() bool { return e.Kind == KindAuthentication }

// IsValidation reports whether the error is a validation failure.
func (e *Error) IsValidation() bool { return e.Kind == KindValidation }

// IsNotFound reports whether the error indicates a missing resource.
func (e *Error) IsNotFound() bool { return e.Kind == KindNotFound }

// IsRateLimit reports whether the error indicates rate limiting.
func (e *Error) IsRateLimit() bool { return e.Kind == KindRateLimit }

// IsNetwork reports whether the error is a transport-level failure.
func (e *Error) IsNetwork() bool { return e.Kind == KindNetwork }

// ErrorKind extracts the kind from err. The second return is false when
// err does not wrap a *ksp.Error.
func ErrorKind(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// classifyResponse maps an HTTP error response (status >= 400) to a typed
// *Error. The message comes from the body's "error" field when the body
// decodes as JSON, falling back to the raw text, then to "HTTP <code>".
func classifyResponse(statusCode int, body []byte) *Error {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = map[string]any{"error": string(body)}
	}

	message := fmt.Sprintf("HTTP %d", statusCode)
	if m, ok := payload["error"].(string); ok && strings.TrimSpace(m) != "" {
		message = m
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &Error{
			Kind:       KindAuthentication,
			Message:    fmt.Sprintf("unauthorized: %s (check your API key)", message),
			StatusCode: statusCode,
			Payload:    payload,
		}
	case http.StatusForbidden:
		return &Error{
			Kind:       KindAuthentication,
			Message:    fmt.Sprintf("forbidden: %s (check your permissions)", message),
			StatusCode: statusCode,
			Payload:    payload,
		}
	case http.StatusNotFound:
		return &Error{
			Kind:       KindNotFound,
			Message:    fmt.Sprintf("not found: %s", message),
			StatusCode: statusCode,
			Payload:    payload,
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &Error{
			Kind:       KindValidation,
			Message:    fmt.Sprintf("validation error: %s", message),
			StatusCode: statusCode,
			Payload:    payload,
		}
	case http.StatusTooManyRequests:
		return &Error{
			Kind:       KindRateLimit,
			Message:    "rate limit exceeded, please try again later",
			StatusCode: statusCode,
			Payload:    payload,
		}
	default:
		return &Error{
			Kind:       KindAPI,
			Message:    fmt.Sprintf("api error: %s", message),
			StatusCode: statusCode,
			Payload:    payload,
		}
	}
}
