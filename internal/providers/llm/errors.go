package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inbucket/html2text"
)

// maxErrorMessage bounds provider error text carried into replies.
const maxErrorMessage = 500

// APIError is a non-200 answer from a provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

func newAPIError(resp rawResponse) *APIError {
	return &APIError{
		StatusCode: resp.status,
		Message:    extractErrorMessage(resp),
	}
}

// extractErrorMessage pulls a readable message out of an error body.
// Providers answer with {"error": {"message": ...}}, {"error": "..."},
// an HTML error page from a proxy, or plain text.
func extractErrorMessage(resp rawResponse) string {
	body := bytes.TrimSpace(resp.body)
	if len(body) == 0 {
		return "Unknown error"
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
			return truncate(nested.Message)
		}
		var flat string
		if json.Unmarshal(envelope.Error, &flat) == nil && flat != "" {
			return truncate(flat)
		}
		return "Unknown error"
	}

	if strings.Contains(resp.contentType, "text/html") {
		text, err := html2text.FromString(string(body), html2text.Options{OmitLinks: true})
		if err == nil && strings.TrimSpace(text) != "" {
			return truncate(strings.TrimSpace(text))
		}
	}
	return truncate(string(body))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxErrorMessage {
		return s
	}
	return string(r[:maxErrorMessage]) + "..."
}
