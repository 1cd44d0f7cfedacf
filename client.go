package foundry

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go"
)

// ProjectClient is the main entrypoint.
type ProjectClient struct {
	Config Config
	auth   Auth
	http   *httpClient
	openai openai.Client

	Agents        *AgentsAPI
	Conversations *ConversationsAPI
	Responses     *ResponsesAPI
}

// NewClient constructs a ProjectClient for endpoint using credential. An
// empty endpoint falls back to AZURE_AI_PROJECT_ENDPOINT; a nil credential
// falls back to the default Azure credential chain.
func NewClient(endpoint string, credential azcore.TokenCredential) (*ProjectClient, error) {
	return NewClientWithParams(ConfigParams{Endpoint: endpoint, Credential: credential})
}

// NewClientWithParams constructs a ProjectClient from structured configuration parameters.
func NewClientWithParams(params ConfigParams) (*ProjectClient, error) {
	cfg, err := LoadConfigWithParams(params)
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig builds a ProjectClient from a fully parsed Config.
func NewClientWithConfig(cfg Config) (*ProjectClient, error) {
	if cfg.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.RequestIDHeader == "" {
		cfg.RequestIDHeader = defaultRequestIDHeader
	}
	if cfg.RedactHeaders == nil {
		cfg.RedactHeaders = defaultRedactHeaders
	}

	auth, err := newAuth(cfg)
	if err != nil {
		return nil, err
	}
	httpClient := newHTTPClient(cfg, auth)

	pc := &ProjectClient{
		Config: cfg,
		auth:   auth,
		http:   httpClient,
		openai: newOpenAIClient(cfg, httpClient),
		Agents: newAgentsAPI(httpClient),
	}
	pc.Conversations = &ConversationsAPI{client: &pc.openai}
	pc.Responses = &ResponsesAPI{client: &pc.openai}
	return pc, nil
}

// OpenAI returns the OpenAI-compatible client bound to this project. It
// shares the project's credential and transport.
func (c *ProjectClient) OpenAI() *openai.Client {
	return &c.openai
}

// Close releases HTTP resources.
func (c *ProjectClient) Close() {
	if c == nil || c.http == nil {
		return
	}
	c.http.close()
}
