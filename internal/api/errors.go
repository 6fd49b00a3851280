package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Veraticus/installmart/internal/common"
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	Message    string
	Body       []byte
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap lets errors.Is(err, common.ErrUnauthorized) match 401 responses.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return common.ErrUnauthorized
	}
	return nil
}

// ServerMessage extracts the human-readable message from a JSON error body.
// It returns "" when the body is not JSON or carries no message.
func ServerMessage(body []byte) string {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "msg"} {
		switch v := envelope[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if s, ok := v["message"].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
