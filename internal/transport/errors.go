package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Detail)
}

// Unauthorized reports whether the backend rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// DetailOf extracts the server-provided detail from err, if any.
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Detail: extractDetail(body)}
}

// extractDetail reads "detail", then "error", then "message" from a JSON
// error body. FastAPI-style validation errors carry a list in "detail".
func extractDetail(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "error", "message"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
			continue
		}
		if compact := strings.TrimSpace(string(raw)); compact != "" && compact != "null" {
			return compact
		}
	}
	return ""
}
