package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNetwork indicates the request never produced an HTTP response:
	// DNS failure, refused connection, timeout, cancelled context.
	ErrNetwork = errors.New("apiclient: network error")

	// ErrMissingBaseURL indicates the client was constructed without a base URL.
	ErrMissingBaseURL = errors.New("apiclient: base URL is required")

	// ErrDecodeResponse indicates a 2xx response body could not be decoded.
	ErrDecodeResponse = errors.New("apiclient: failed to decode response")
)

// APIError is a non-2xx response from the backend, with the human-readable
// message extracted from its error body.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("apiclient: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("apiclient: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// IsUnauthorized reports whether the backend rejected the bearer credential.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// errorBody covers the error shapes Django REST Framework produces.
// Which one appears depends on how the view raised the error, so all are
// optional and checked in order.
type errorBody struct {
	Detail         string   `json:"detail"`
	ErrorField     string   `json:"error"`
	NonFieldErrors []string `json:"non_field_errors"`
}

// extractErrorMessage pulls a displayable message out of a backend error body.
// Falls back to the raw body so no server diagnostic is ever dropped.
func extractErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var structured errorBody
	if err := json.Unmarshal(body, &structured); err == nil {
		switch {
		case structured.Detail != "":
			return structured.Detail
		case structured.ErrorField != "":
			return structured.ErrorField
		case len(structured.NonFieldErrors) > 0:
			return strings.Join(structured.NonFieldErrors, "; ")
		}
	}

	// DRF emits a bare JSON array when a view raises ValidationError("msg").
	var list []string
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}

	return trimmed
}
