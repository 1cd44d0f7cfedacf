package foundry

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// Logger is the minimal logging interface supported by the SDK.
type Logger interface {
	Printf(format string, v ...any)
}

// RequestHook allows callers to inspect or mutate requests before they are sent.
type RequestHook func(*http.Request)

// ResponseHook allows callers to inspect responses (raw bytes included).
type ResponseHook func(*http.Response, []byte)

// Config holds SDK configuration.
type Config struct {
	Endpoint   string
	APIVersion string

	// Credential resolves bearer tokens for Scope. When nil and APIKey is
	// empty the client falls back to the default Azure credential chain.
	Credential azcore.TokenCredential
	Scope      string
	APIKey     string

	Timeout    time.Duration
	MaxRetries int

	Debug bool

	ExtraHeaders http.Header
	ProxyURL     *url.URL

	// RequestIDHeader defaults to x-ms-client-request-id. Each request
	// carries DefaultRequestID, or a fresh UUID unless DisableAutoRequestID.
	RequestIDHeader      string
	DefaultRequestID     string
	DisableAutoRequestID bool

	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
	RetryJitter          float64

	Logger Logger
	// RedactHeaders are masked in debug logs. Nil means Authorization and
	// api-key; an empty non-nil slice disables redaction.
	RedactHeaders []string

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

// ConfigParams provides optional overrides for building a Config.
type ConfigParams struct {
	Endpoint        string
	APIVersion      string
	Credential      azcore.TokenCredential
	Scope           string
	APIKey          string
	Timeout         time.Duration
	TimeoutSeconds  float64
	MaxRetries      *int
	Debug           *bool
	ExtraHeaders    http.Header
	ProxyURL        string
	RequestID       string
	AutoRequestID   *bool
	RequestIDHeader string

	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
	RetryJitter          float64

	Logger        Logger
	RedactHeaders []string

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

const (
	DefaultAPIVersion = "2025-11-15-preview"
	DefaultScope      = "https://ai.azure.com/.default"

	defaultMaxRetries      = 0
	defaultRetryInitial    = 200 * time.Millisecond
	defaultRetryMax        = 2 * time.Second
	defaultRetryMultiplier = 2.0
	defaultRetryJitter     = 0.2
	defaultMaxIdleConns    = 100
	defaultMaxIdlePerHost  = 10
	defaultIdleConnTimeout = 90 * time.Second
	defaultRequestIDHeader = "x-ms-client-request-id"
)

var defaultRedactHeaders = []string{"Authorization", "api-key"}

// LoadConfig builds a Config from parameters or environment variables.
// Environment fallbacks:
//
//	AZURE_AI_PROJECT_ENDPOINT, AZURE_AI_PROJECT_API_VERSION, AZURE_AI_PROJECT_API_KEY,
//	AZURE_AI_PROJECT_SCOPE, AZURE_AI_PROJECT_TIMEOUT, AZURE_AI_PROJECT_MAX_RETRIES,
//	AZURE_AI_PROJECT_DEBUG, AZURE_AI_PROJECT_PROXY, AZURE_AI_PROJECT_EXTRA_HEADERS,
//	AZURE_AI_PROJECT_REQUEST_ID, AZURE_AI_PROJECT_AUTO_REQUEST_ID,
//	AZURE_AI_PROJECT_REQUEST_ID_HEADER, AZURE_AI_PROJECT_RETRY_INITIAL_MS,
//	AZURE_AI_PROJECT_RETRY_MAX_MS, AZURE_AI_PROJECT_RETRY_MULTIPLIER,
//	AZURE_AI_PROJECT_RETRY_JITTER.
func LoadConfig(endpoint, apiVersion string) (Config, error) {
	return LoadConfigWithParams(ConfigParams{
		Endpoint:   endpoint,
		APIVersion: apiVersion,
	})
}

// LoadConfigWithParams is an extended constructor that accepts structured options.
func LoadConfigWithParams(params ConfigParams) (Config, error) {
	envMaxRetries, envMaxRetriesSet, err := parseEnvInt("AZURE_AI_PROJECT_MAX_RETRIES")
	if err != nil {
		return Config{}, err
	}

	maxRetries := defaultMaxRetries
	if envMaxRetriesSet {
		maxRetries = envMaxRetries
	}
	if params.MaxRetries != nil {
		maxRetries = *params.MaxRetries
	}

	cfg := Config{
		Endpoint:             strings.TrimSuffix(firstNonEmpty(params.Endpoint, os.Getenv("AZURE_AI_PROJECT_ENDPOINT")), "/"),
		APIVersion:           firstNonEmpty(params.APIVersion, os.Getenv("AZURE_AI_PROJECT_API_VERSION"), DefaultAPIVersion),
		Credential:           params.Credential,
		Scope:                firstNonEmpty(params.Scope, os.Getenv("AZURE_AI_PROJECT_SCOPE"), DefaultScope),
		APIKey:               firstNonEmpty(params.APIKey, os.Getenv("AZURE_AI_PROJECT_API_KEY")),
		MaxRetries:           maxRetries,
		ExtraHeaders:         cloneHeaders(params.ExtraHeaders),
		RequestIDHeader:      firstNonEmpty(params.RequestIDHeader, os.Getenv("AZURE_AI_PROJECT_REQUEST_ID_HEADER"), defaultRequestIDHeader),
		DefaultRequestID:     firstNonEmpty(params.RequestID, os.Getenv("AZURE_AI_PROJECT_REQUEST_ID")),
		RetryInitialInterval: firstNonZeroDuration(params.RetryInitialInterval, defaultRetryInitial),
		RetryMaxInterval:     firstNonZeroDuration(params.RetryMaxInterval, defaultRetryMax),
		RetryMultiplier:      defaultRetryMultiplier,
		RetryJitter:          defaultRetryJitter,
		Logger:               params.Logger,
		RedactHeaders:        params.RedactHeaders,
		BeforeRequest:        params.BeforeRequest,
		AfterResponse:        params.AfterResponse,
	}
	if params.RetryMultiplier != 0 {
		cfg.RetryMultiplier = params.RetryMultiplier
	}
	if params.RetryJitter != 0 {
		cfg.RetryJitter = params.RetryJitter
	}

	if params.Debug != nil {
		cfg.Debug = *params.Debug
	} else if env := os.Getenv("AZURE_AI_PROJECT_DEBUG"); env != "" {
		val, err := strconv.ParseBool(env)
		if err != nil {
			return Config{}, fmt.Errorf("parse AZURE_AI_PROJECT_DEBUG: %w", err)
		}
		cfg.Debug = val
	}

	// A zero timeout leaves the transport defaults in charge.
	if params.Timeout > 0 {
		cfg.Timeout = params.Timeout
	} else if params.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(params.TimeoutSeconds * float64(time.Second))
	} else if envTimeout, err := parseEnvDuration("AZURE_AI_PROJECT_TIMEOUT", time.Second); err != nil {
		return Config{}, err
	} else {
		cfg.Timeout = envTimeout
	}
	if cfg.Timeout < 0 || params.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be non-negative")
	}

	if env := os.Getenv("AZURE_AI_PROJECT_EXTRA_HEADERS"); env != "" {
		envHeaders, err := parseHeadersEnv(env)
		if err != nil {
			return Config{}, err
		}
		for k, vals := range envHeaders {
			for _, v := range vals {
				cfg.ExtraHeaders.Add(k, v)
			}
		}
	}

	proxyURL := firstNonEmpty(params.ProxyURL, os.Getenv("AZURE_AI_PROJECT_PROXY"))
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return Config{}, fmt.Errorf("parse AZURE_AI_PROJECT_PROXY: %w", err)
		}
		cfg.ProxyURL = parsed
	}

	if params.AutoRequestID != nil {
		cfg.DisableAutoRequestID = !*params.AutoRequestID
	} else if env := os.Getenv("AZURE_AI_PROJECT_AUTO_REQUEST_ID"); env != "" {
		val, err := strconv.ParseBool(env)
		if err != nil {
			return Config{}, fmt.Errorf("parse AZURE_AI_PROJECT_AUTO_REQUEST_ID: %w", err)
		}
		cfg.DisableAutoRequestID = !val
	}

	if val, err := parseEnvDuration("AZURE_AI_PROJECT_RETRY_INITIAL_MS", time.Millisecond); err != nil {
		return Config{}, err
	} else if val > 0 && params.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = val
	}
	if val, err := parseEnvDuration("AZURE_AI_PROJECT_RETRY_MAX_MS", time.Millisecond); err != nil {
		return Config{}, err
	} else if val > 0 && params.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = val
	}
	if valStr := os.Getenv("AZURE_AI_PROJECT_RETRY_MULTIPLIER"); valStr != "" && params.RetryMultiplier == 0 {
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse AZURE_AI_PROJECT_RETRY_MULTIPLIER: %w", err)
		}
		cfg.RetryMultiplier = val
	}
	if valStr := os.Getenv("AZURE_AI_PROJECT_RETRY_JITTER"); valStr != "" && params.RetryJitter == 0 {
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse AZURE_AI_PROJECT_RETRY_JITTER: %w", err)
		}
		cfg.RetryJitter = val
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0")
	}
	if cfg.RetryInitialInterval <= 0 || cfg.RetryMaxInterval <= 0 {
		return fmt.Errorf("retry intervals must be positive")
	}
	if cfg.RetryMultiplier < 1 {
		return fmt.Errorf("retry multiplier must be >= 1")
	}
	if cfg.RetryJitter < 0 || cfg.RetryJitter > 1 {
		return fmt.Errorf("retry jitter must be between 0 and 1")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZeroDuration(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func parseEnvInt(env string) (int, bool, error) {
	val, ok := os.LookupEnv(env)
	if !ok || val == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, true, fmt.Errorf("parse %s: %w", env, err)
	}
	return parsed, true, nil
}

func parseEnvDuration(env string, numericUnit time.Duration) (time.Duration, error) {
	val := os.Getenv(env)
	if val == "" {
		return 0, nil
	}
	if duration, err := time.ParseDuration(val); err == nil {
		return duration, nil
	}
	seconds, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", env, err)
	}
	return time.Duration(seconds * float64(numericUnit)), nil
}

func parseHeadersEnv(val string) (http.Header, error) {
	headers := http.Header{}
	if val == "" {
		return headers, nil
	}
	for _, entry := range strings.FieldsFunc(val, func(r rune) bool { return r == ';' || r == ',' || r == '\n' }) {
		if entry == "" {
			continue
		}
		sep := ":"
		if strings.Contains(entry, "=") {
			sep = "="
		}
		parts := strings.SplitN(entry, sep, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header entry %q", entry)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			return nil, fmt.Errorf("invalid header entry %q", entry)
		}
		headers.Add(key, value)
	}
	return headers, nil
}

func cloneHeaders(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	clone := http.Header{}
	for k, vals := range h {
		clone[k] = append([]string(nil), vals...)
	}
	return clone
}
