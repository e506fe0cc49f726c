// ABOUTME: Error types for PropTrack API failures
// ABOUTME: Distinguishes transport failures from backend rejections

package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// NetworkError means the request never completed: connection refused,
// DNS failure, timeout, or cancellation
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach backend at %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError means the backend answered with a non-2xx status.
// Message carries the response body text so callers can show it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// maxErrorBody caps how much of an error response we read
const maxErrorBody = 64 * 1024

// newAPIError builds an APIError from a non-2xx response.
// The backend is DRF, which wraps most errors as {"detail": "..."} or as
// field->messages maps; both are flattened to readable text. Non-JSON
// bodies are used as-is.
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := errorMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed: %d", resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// errorMessage extracts a display message from an error response body
func errorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return text
	}
	if detail := gjson.GetBytes(body, "detail"); detail.Exists() {
		return detail.String()
	}
	// Field validation errors arrive as {"field": ["msg", ...], ...}
	parsed := gjson.ParseBytes(body)
	if parsed.IsObject() {
		var parts []string
		parsed.ForEach(func(key, value gjson.Result) bool {
			if value.IsArray() {
				for _, item := range value.Array() {
					parts = append(parts, fmt.Sprintf("%s: %s", key.String(), item.String()))
				}
			} else {
				parts = append(parts, fmt.Sprintf("%s: %s", key.String(), value.String()))
			}
			return true
		})
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return text
}

// IsNetworkError reports whether err is (or wraps) a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is (or wraps) an APIError, returning it
func IsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
