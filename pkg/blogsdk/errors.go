package blogsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DefaultErrorMessage is shown when the server gave no usable message.
const DefaultErrorMessage = "request failed, please try again"

var (
	// ErrSessionExpired is returned when the refresh credential was rejected
	// and the session has been cleared.
	ErrSessionExpired = errors.New("blogsdk: session expired")

	// ErrNotLoggedIn is returned by the account operations (profile,
	// nickname, password, withdraw) when no credential is held at all.
	ErrNotLoggedIn = errors.New("blogsdk: not logged in")

	// ErrNoRefreshCredential is returned when a refresh is needed but no
	// refresh token is held.
	ErrNoRefreshCredential = errors.New("blogsdk: no refresh credential")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // transport or decode failure, if any
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("blogsdk: %s", e.Message)
	}
	return fmt.Sprintf("blogsdk: %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether the server rejected the bearer token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports a permission failure.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// parseErrorResponse builds an APIError from a failed response, preferring
// the server supplied message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	msg := ""

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		msg = strings.TrimSpace(eb.Message)
		if msg == "" {
			msg = strings.TrimSpace(eb.Error)
		}
	}
	if msg == "" {
		msg = DefaultErrorMessage
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// ============================================================================
// Result - uniform outcome for UI consumption
// ============================================================================

// Result is the {success, message} shape handed to presentation code.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResultOf turns an error into a Result. A nil error yields a success with
// okMessage; an *APIError contributes its server message; anything else maps
// to the generic fallback.
func ResultOf(err error, okMessage string) Result {
	if err == nil {
		return Result{Success: true, Message: okMessage}
	}
	return Result{Success: false, Message: ErrorMessage(err)}
}

// ErrorMessage extracts a user-displayable message from err.
func ErrorMessage(err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrSessionExpired):
		return "your session has expired, please log in again"
	case errors.Is(err, ErrNotLoggedIn):
		return "please log in first"
	default:
		return DefaultErrorMessage
	}
}
