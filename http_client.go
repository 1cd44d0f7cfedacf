package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	mrand "math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type httpClient struct {
	client    *http.Client
	cfg       Config
	auth      Auth
	logger    Logger
	redactMap map[string]struct{}
}

func newHTTPClient(cfg Config, auth Auth) *httpClient {
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = defaultRetryInitial
	}
	if cfg.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = defaultRetryMax
	}
	if cfg.RetryMultiplier == 0 {
		cfg.RetryMultiplier = defaultRetryMultiplier
	}
	if cfg.RequestIDHeader == "" {
		cfg.RequestIDHeader = defaultRequestIDHeader
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.RedactHeaders == nil {
		cfg.RedactHeaders = defaultRedactHeaders
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdlePerHost,
		IdleConnTimeout:     defaultIdleConnTimeout,
	}
	if cfg.ProxyURL != nil {
		transport.Proxy = http.ProxyURL(cfg.ProxyURL)
	}

	logger := cfg.Logger
	if cfg.Debug && logger == nil {
		logger = log.New(os.Stderr, "foundry-sdk ", log.LstdFlags)
	}

	redactions := map[string]struct{}{}
	for _, h := range cfg.RedactHeaders {
		redactions[strings.ToLower(h)] = struct{}{}
	}

	return &httpClient{
		cfg:  cfg,
		auth: auth,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger:    logger,
		redactMap: redactions,
	}
}

func (c *httpClient) close() {
	if t, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

func (c *httpClient) buildURL(path string, query map[string]string) (string, error) {
	base := strings.TrimSuffix(c.cfg.Endpoint, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("api-version", c.cfg.APIVersion)
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, headers http.Header, body io.Reader, query map[string]string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	fullURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	var bodyBytes []byte
	if body != nil {
		if b, ok := body.(*bytes.Buffer); ok {
			bodyBytes = b.Bytes()
		} else {
			bodyBytes, err = io.ReadAll(body)
			if err != nil {
				return nil, fmt.Errorf("read request body: %w", err)
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, err
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	_, respBody, err := c.send(req, bodyBytes, c.client.Do)
	return respBody, err
}

// send runs the attempt loop for req, replaying bodyBytes on every attempt.
// next performs the actual round trip.
func (c *httpClient) send(req *http.Request, bodyBytes []byte, next func(*http.Request) (*http.Response, error)) (*http.Response, []byte, error) {
	ctx := req.Context()
	var lastErr error
	maxAttempts := c.cfg.MaxRetries + 1

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		attemptReq := req.Clone(ctx)
		if bodyBytes != nil {
			attemptReq.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			attemptReq.ContentLength = int64(len(bodyBytes))
			attemptReq.GetBody = func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(bodyBytes)), nil
			}
		}

		if err := c.applyHeaders(attemptReq); err != nil {
			return nil, nil, err
		}
		c.attachRequestID(attemptReq)
		c.runRequestHooks(attemptReq)
		c.logRequest(attemptReq, attempt)

		start := time.Now()
		resp, err := next(attemptReq)
		duration := time.Since(start)

		if err != nil {
			if !c.shouldRetry(nil, err, attempt) {
				return nil, nil, err
			}
			lastErr = err
			c.logf("retrying after error (attempt %d/%d): %v", attempt+1, maxAttempts, err)
			if err := c.sleepWithContext(ctx, c.backoffDuration(attempt)); err != nil {
				return nil, nil, err
			}
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, nil, fmt.Errorf("read response: %w", readErr)
		}

		c.logResponse(attemptReq, resp, respBody, duration)
		c.runResponseHooks(resp, respBody)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, respBody, nil
		}

		apiErr := apiErrorFromResponse(resp.StatusCode, respBody, resp.Header, c.cfg.RequestIDHeader)
		lastErr = apiErr

		if c.shouldRetry(resp, nil, attempt) {
			c.logf("retrying after status %d (attempt %d/%d)", resp.StatusCode, attempt+1, maxAttempts)
			if err := c.sleepWithContext(ctx, c.retryDelay(resp, attempt)); err != nil {
				return nil, nil, err
			}
			continue
		}

		return nil, nil, apiErr
	}

	return nil, nil, lastErr
}

func (c *httpClient) logf(format string, args ...any) {
	if c.logger == nil || !c.cfg.Debug {
		return
	}
	c.logger.Printf(format, args...)
}

func (c *httpClient) logRequest(req *http.Request, attempt int) {
	if c.logger == nil || !c.cfg.Debug {
		return
	}
	c.logger.Printf("[request] %s %s attempt=%d headers=%v", req.Method, req.URL.String(), attempt+1, c.redactedHeaders(req.Header))
}

func (c *httpClient) logResponse(req *http.Request, resp *http.Response, body []byte, duration time.Duration) {
	if c.logger == nil || !c.cfg.Debug {
		return
	}
	requestID := resp.Header.Get(c.cfg.RequestIDHeader)
	c.logger.Printf("[response] %s %s status=%d duration=%s request_id=%s body=%s", req.Method, req.URL.String(), resp.StatusCode, duration, requestID, previewBody(body, maxLoggedBody))
}

const maxLoggedBody = 512

// previewBody shortens body to at most limit bytes without splitting a rune.
func previewBody(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "…"
}

func (c *httpClient) redactedHeaders(h http.Header) http.Header {
	if len(c.redactMap) == 0 {
		return h
	}
	cloned := cloneHeaders(h)
	for k := range cloned {
		if _, ok := c.redactMap[strings.ToLower(k)]; ok {
			cloned.Set(k, "[redacted]")
		}
	}
	return cloned
}

// applyHeaders resolves auth first so a credential failure stops the
// request before it reaches the transport.
func (c *httpClient) applyHeaders(req *http.Request) error {
	authHeaders, err := c.auth.Headers(req.Context())
	if err != nil {
		return err
	}
	for k, vals := range authHeaders {
		req.Header.Del(k)
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	for k, vals := range c.cfg.ExtraHeaders {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	return nil
}

func (c *httpClient) attachRequestID(req *http.Request) {
	if c.cfg.RequestIDHeader == "" {
		return
	}
	if req.Header.Get(c.cfg.RequestIDHeader) != "" {
		return
	}
	switch {
	case c.cfg.DefaultRequestID != "":
		req.Header.Set(c.cfg.RequestIDHeader, c.cfg.DefaultRequestID)
	case !c.cfg.DisableAutoRequestID:
		req.Header.Set(c.cfg.RequestIDHeader, uuid.NewString())
	}
}

func (c *httpClient) runRequestHooks(req *http.Request) {
	for i, hook := range c.cfg.BeforeRequest {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logf("request hook[%d] panic: %v", i, r)
				}
			}()
			hook(req)
		}()
	}
}

func (c *httpClient) runResponseHooks(resp *http.Response, body []byte) {
	for i, hook := range c.cfg.AfterResponse {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logf("response hook[%d] panic: %v", i, r)
				}
			}()
			hook(resp, body)
		}()
	}
}

func (c *httpClient) shouldRetry(resp *http.Response, err error, attempt int) bool {
	if attempt >= c.cfg.MaxRetries {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		return true
	}
	if resp == nil {
		return false
	}
	if resp.StatusCode >= 500 {
		return true
	}
	switch resp.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

func (c *httpClient) backoffDuration(attempt int) time.Duration {
	factor := math.Pow(c.cfg.RetryMultiplier, float64(attempt))
	delay := time.Duration(float64(c.cfg.RetryInitialInterval) * factor)
	if delay > c.cfg.RetryMaxInterval {
		delay = c.cfg.RetryMaxInterval
	}
	if c.cfg.RetryJitter > 0 {
		jitterFactor := 1 + (mrand.Float64()*2-1)*c.cfg.RetryJitter
		delay = time.Duration(float64(delay) * jitterFactor)
	}
	if delay < time.Millisecond {
		return time.Millisecond
	}
	return delay
}

func (c *httpClient) retryDelay(resp *http.Response, attempt int) time.Duration {
	delay := c.backoffDuration(attempt)
	if resp == nil {
		return delay
	}
	retryAfter := parseRetryAfter(resp.Header)
	if retryAfter == nil || *retryAfter <= 0 {
		return delay
	}
	if *retryAfter > delay {
		return *retryAfter
	}
	return delay
}

func (c *httpClient) sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *httpClient) getWithContext(ctx context.Context, path string, query map[string]string, out any) error {
	data, err := c.doRequest(ctx, http.MethodGet, path, http.Header{}, nil, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *httpClient) postJSONWithContext(ctx context.Context, path string, payload any, query map[string]string, out any) error {
	buf := &bytes.Buffer{}
	if payload != nil {
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	data, err := c.doRequest(ctx, http.MethodPost, path, headers, buf, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
