package foundry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingEndpoint = errors.New("project endpoint is required. Provide it or set AZURE_AI_PROJECT_ENDPOINT")
	ErrEmptyAgentName  = errors.New("agent name cannot be empty")

	errNoCredential = errors.New("no credential configured")
)

// CredentialError reports that the credential chain could not produce a
// token. No request is sent when it is returned.
type CredentialError struct {
	Scope string
	Err   error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("acquire token for %s: %v", e.Scope, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// APIError represents an error returned by the project endpoint.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
	RequestID  string
	Details    map[string]any
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.RequestID != "" {
		return fmt.Sprintf("foundry api error (%d): %s (request_id=%s)", e.StatusCode, msg, e.RequestID)
	}
	return fmt.Sprintf("foundry api error (%d): %s", e.StatusCode, msg)
}

type BadRequestError struct{ *APIError }
type AuthenticationError struct{ *APIError }
type ForbiddenError struct{ *APIError }
type NotFoundError struct{ *APIError }
type ConflictError struct{ *APIError }
type RateLimitError struct {
	*APIError
	RetryAfter *time.Duration
}
type ServerError struct{ *APIError }

// apiErrorFromResponse maps an HTTP status code and optional JSON body to a typed error.
func apiErrorFromResponse(status int, body []byte, headers http.Header, requestIDHeader string) error {
	code, message, details := extractErrorDetail(status, body)
	requestID := ""
	if headers != nil {
		if requestIDHeader != "" {
			requestID = headers.Get(requestIDHeader)
		}
		if requestID == "" {
			requestID = headers.Get("apim-request-id")
		}
	}

	base := &APIError{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Body:       body,
		RequestID:  requestID,
		Details:    details,
	}

	switch status {
	case http.StatusBadRequest:
		return &BadRequestError{APIError: base}
	case http.StatusUnauthorized:
		return &AuthenticationError{APIError: base}
	case http.StatusForbidden:
		return &ForbiddenError{APIError: base}
	case http.StatusNotFound:
		return &NotFoundError{APIError: base}
	case http.StatusConflict:
		return &ConflictError{APIError: base}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError: base, RetryAfter: parseRetryAfter(headers)}
	default:
		if status >= 500 {
			return &ServerError{APIError: base}
		}
		return base
	}
}

func extractErrorDetail(status int, body []byte) (string, string, map[string]any) {
	details := map[string]any{}
	if len(body) == 0 {
		return "", fmt.Sprintf("HTTP %d", status), details
	}
	raw := strings.TrimSpace(string(body))

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		details = parsed
		// {"error": {"code": "...", "message": "..."}}
		if nested, ok := parsed["error"].(map[string]any); ok {
			code, _ := nested["code"].(string)
			if msg := findDetailString(nested); msg != "" {
				return code, msg, details
			}
		}
		if msg := findDetailString(parsed); msg != "" {
			code, _ := parsed["code"].(string)
			return code, msg, details
		}
	}
	if raw != "" {
		return "", raw, details
	}
	return "", fmt.Sprintf("HTTP %d", status), details
}

func findDetailString(parsed map[string]any) string {
	for _, key := range []string{"message", "detail", "error"} {
		if v, ok := parsed[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func parseRetryAfter(headers http.Header) *time.Duration {
	if headers == nil {
		return nil
	}
	val := headers.Get("Retry-After")
	if val == "" {
		return nil
	}
	if seconds, err := strconv.Atoi(val); err == nil {
		d := time.Duration(seconds) * time.Second
		return &d
	}
	if t, err := http.ParseTime(val); err == nil {
		d := time.Until(t)
		return &d
	}
	return nil
}
