package foundry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusCases pairs each mapped status with a check that the error has the
// matching wrapper type.
var statusCases = []struct {
	status int
	code   string
	is     func(error) bool
}{
	{http.StatusBadRequest, "invalid_payload", func(err error) bool { var e *BadRequestError; return errors.As(err, &e) }},
	{http.StatusUnauthorized, "unauthorized", func(err error) bool { var e *AuthenticationError; return errors.As(err, &e) }},
	{http.StatusForbidden, "PermissionDenied", func(err error) bool { var e *ForbiddenError; return errors.As(err, &e) }},
	{http.StatusNotFound, "not_found", func(err error) bool { var e *NotFoundError; return errors.As(err, &e) }},
	{http.StatusConflict, "conflict", func(err error) bool { var e *ConflictError; return errors.As(err, &e) }},
	{http.StatusTooManyRequests, "too_many_requests", func(err error) bool { var e *RateLimitError; return errors.As(err, &e) }},
	{http.StatusInternalServerError, "server_error", func(err error) bool { var e *ServerError; return errors.As(err, &e) }},
	{http.StatusServiceUnavailable, "service_unavailable", func(err error) bool { var e *ServerError; return errors.As(err, &e) }},
}

// baseError digs the shared *APIError out of any wrapper.
func baseError(t *testing.T, err error) *APIError {
	t.Helper()
	switch e := err.(type) {
	case *BadRequestError:
		return e.APIError
	case *AuthenticationError:
		return e.APIError
	case *ForbiddenError:
		return e.APIError
	case *NotFoundError:
		return e.APIError
	case *ConflictError:
		return e.APIError
	case *RateLimitError:
		return e.APIError
	case *ServerError:
		return e.APIError
	case *APIError:
		return e
	}
	var wrapped interface{ Unwrap() error }
	if errors.As(err, &wrapped) {
		return baseError(t, wrapped.Unwrap())
	}
	t.Fatalf("no *APIError inside %T", err)
	return nil
}

func TestAPIErrorFromFoundryErrorEnvelope(t *testing.T) {
	for _, tc := range statusCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			body := fmt.Sprintf(`{"error":{"code":%q,"message":"status %d from service"}}`, tc.code, tc.status)
			headers := http.Header{}
			headers.Set("x-ms-client-request-id", "client-1")

			err := apiErrorFromResponse(tc.status, []byte(body), headers, "x-ms-client-request-id")
			require.True(t, tc.is(err), "unexpected type %T", err)

			base := baseError(t, err)
			assert.Equal(t, tc.status, base.StatusCode)
			assert.Equal(t, tc.code, base.Code)
			assert.Equal(t, fmt.Sprintf("status %d from service", tc.status), base.Message)
			assert.Equal(t, "client-1", base.RequestID)
			assert.Contains(t, err.Error(), tc.code+": ")
			assert.Contains(t, err.Error(), "request_id=client-1")
		})
	}
}

func TestAPIErrorUnmappedStatusStaysGeneric(t *testing.T) {
	err := apiErrorFromResponse(http.StatusUnprocessableEntity, []byte(`{"error":{"message":"unsupported kind"}}`), nil, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "unsupported kind", apiErr.Message)
	require.Equal(t, "foundry api error (422): unsupported kind", err.Error())
}

func TestAPIErrorRequestIDFallsBackToAPIM(t *testing.T) {
	headers := http.Header{}
	headers.Set("apim-request-id", "apim-7")

	err := apiErrorFromResponse(http.StatusNotFound, []byte(`{"error":{"message":"missing"}}`), headers, "x-ms-client-request-id")
	require.Equal(t, "apim-7", baseError(t, err).RequestID)

	headers.Set("x-ms-client-request-id", "client-7")
	err = apiErrorFromResponse(http.StatusNotFound, nil, headers, "x-ms-client-request-id")
	require.Equal(t, "client-7", baseError(t, err).RequestID, "configured header wins over apim-request-id")
}

func TestExtractErrorDetailShapes(t *testing.T) {
	tests := map[string]struct {
		status   int
		body     string
		code     string
		message  string
		detailed bool
	}{
		"envelope":          {404, `{"error":{"code":"not_found","message":"Agent a not found","param":"agent"}}`, "not_found", "Agent a not found", true},
		"envelope no msg":   {400, `{"error":{"code":"bad"},"message":"outer"}`, "", "outer", true},
		"flat code":         {409, `{"code":"conflict","message":"Version exists"}`, "conflict", "Version exists", true},
		"string error":      {500, `{"error":"Server error"}`, "", "Server error", true},
		"plain text":        {502, "upstream connect error", "", "upstream connect error", false},
		"empty":             {503, "", "", "HTTP 503", false},
		"whitespace padded": {504, "  gateway timeout \n", "", "gateway timeout", false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			code, msg, details := extractErrorDetail(tc.status, []byte(tc.body))
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.message, msg)
			assert.Equal(t, tc.detailed, len(details) > 0)
		})
	}
}

func TestRateLimitRetryAfter(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "12")
	err := apiErrorFromResponse(http.StatusTooManyRequests, nil, headers, "")

	var rate *RateLimitError
	require.ErrorAs(t, err, &rate)
	require.NotNil(t, rate.RetryAfter)
	require.Equal(t, 12*time.Second, *rate.RetryAfter)

	headers.Set("Retry-After", "soon")
	require.Nil(t, parseRetryAfter(headers))
	require.Nil(t, parseRetryAfter(http.Header{}))
}

func TestOpenAISurfaceErrorsKeepTypes(t *testing.T) {
	for _, tc := range statusCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("apim-request-id", "apim-oai")
				w.WriteHeader(tc.status)
				_, _ = fmt.Fprintf(w, `{"error":{"code":%q,"message":"agent trivia: %s"}}`, tc.code, http.StatusText(tc.status))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, &fakeCredential{token: "tok"})

			_, err := client.Responses.Create(context.Background(), ResponseCreateParams{
				Conversation: "conv_1",
				Agent:        AgentRef("trivia"),
			})
			require.Error(t, err)
			require.True(t, tc.is(err), "unexpected type %T: %v", err, err)

			var credErr *CredentialError
			require.False(t, errors.As(err, &credErr))
			require.Contains(t, err.Error(), "agent trivia")
			require.Contains(t, err.Error(), "request_id=")
		})
	}
}

func TestCredentialErrorUnwraps(t *testing.T) {
	cause := errors.New("no managed identity endpoint")
	err := fmt.Errorf("create agent: %w", &CredentialError{Scope: DefaultScope, Err: cause})

	require.ErrorIs(t, err, cause)
	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	require.Equal(t, DefaultScope, credErr.Scope)
	require.Contains(t, err.Error(), "acquire token for "+DefaultScope)
}
