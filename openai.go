package foundry

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// newOpenAIClient returns an OpenAI-compatible client rooted at the
// project's /openai/ surface. Transport, auth, request ids, hooks, and
// retries all go through the project's httpClient; the OpenAI client's own
// retry loop is disabled.
func newOpenAIClient(cfg Config, hc *httpClient) openai.Client {
	return openai.NewClient(
		option.WithBaseURL(cfg.Endpoint+"/openai/"),
		option.WithHTTPClient(hc.client),
		option.WithMaxRetries(0),
		option.WithMiddleware(hc.openAIMiddleware),
	)
}

func (c *httpClient) openAIMiddleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}

	// The OpenAI client may pick up OPENAI_API_KEY from the environment.
	req.Header.Del("Authorization")

	q := req.URL.Query()
	if q.Get("api-version") == "" {
		q.Set("api-version", c.cfg.APIVersion)
		req.URL.RawQuery = q.Encode()
	}

	resp, body, err := c.send(req, bodyBytes, next)
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}
