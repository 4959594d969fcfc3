package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/codeorbit/codeorbit-client/internal/requester"
)

// ErrorMessage returns the message a user should see for err. For API errors
// it prefers the backend's "message" or "error" field.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *requester.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(apiErr.Body, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(apiErr.Body)); text != "" && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(apiErr.StatusCode)
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *requester.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
