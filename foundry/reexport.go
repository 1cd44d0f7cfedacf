package foundry

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	root "github.com/melionel/foundry-samples"
)

type (
	// Core client/config.
	ProjectClient = root.ProjectClient
	Config        = root.Config
	ConfigParams  = root.ConfigParams
	Logger        = root.Logger

	RequestHook  = root.RequestHook
	ResponseHook = root.ResponseHook

	// API surfaces.
	Auth             = root.Auth
	AgentsAPI        = root.AgentsAPI
	AgentVersionsAPI = root.AgentVersionsAPI
	ConversationsAPI = root.ConversationsAPI
	ResponsesAPI     = root.ResponsesAPI
	ListParams       = root.ListParams

	// Agents.
	AgentDefinition          = root.AgentDefinition
	CreateAgentVersionParams = root.CreateAgentVersionParams
	AgentVersion             = root.AgentVersion
	Agent                    = root.Agent
	AgentReference           = root.AgentReference

	// Conversations and responses.
	ConversationItem         = root.ConversationItem
	ConversationCreateParams = root.ConversationCreateParams
	Conversation             = root.Conversation
	ResponseCreateParams     = root.ResponseCreateParams
	Response                 = root.Response
	OutputItem               = root.OutputItem
	OutputContent            = root.OutputContent
	ResponseError            = root.ResponseError
	ConversationRef          = root.ConversationRef

	// Errors.
	CredentialError     = root.CredentialError
	APIError            = root.APIError
	BadRequestError     = root.BadRequestError
	AuthenticationError = root.AuthenticationError
	ForbiddenError      = root.ForbiddenError
	NotFoundError       = root.NotFoundError
	ConflictError       = root.ConflictError
	RateLimitError      = root.RateLimitError
	ServerError         = root.ServerError
)

const (
	AgentKindPrompt   = root.AgentKindPrompt
	DefaultAPIVersion = root.DefaultAPIVersion
	DefaultScope      = root.DefaultScope
)

var (
	ErrMissingEndpoint = root.ErrMissingEndpoint
	ErrEmptyAgentName  = root.ErrEmptyAgentName
)

func NewClient(endpoint string, credential azcore.TokenCredential) (*ProjectClient, error) {
	return root.NewClient(endpoint, credential)
}

func NewClientWithParams(params ConfigParams) (*ProjectClient, error) {
	return root.NewClientWithParams(params)
}

func NewClientWithConfig(cfg Config) (*ProjectClient, error) {
	return root.NewClientWithConfig(cfg)
}

func LoadConfig(endpoint, apiVersion string) (Config, error) {
	return root.LoadConfig(endpoint, apiVersion)
}

func LoadConfigWithParams(params ConfigParams) (Config, error) {
	return root.LoadConfigWithParams(params)
}

func PromptAgent(model, instructions string) AgentDefinition {
	return root.PromptAgent(model, instructions)
}

func AgentRef(name string) *AgentReference {
	return root.AgentRef(name)
}

func UserMessage(text string) ConversationItem {
	return root.UserMessage(text)
}
