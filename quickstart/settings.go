// Package quickstart holds the two quickstart workflows: provisioning a
// prompt agent, and asking a named agent one question in a new
// conversation.
package quickstart

import "os"

// Environment variables read by LoadSettings.
const (
	EnvProjectEndpoint     = "AZURE_AI_PROJECT_ENDPOINT"
	EnvModelDeploymentName = "AZURE_AI_FOUNDRY_MODEL_DEPLOYMENT_NAME"
	EnvAgentName           = "AZURE_AI_FOUNDRY_AGENT_NAME"
)

// Placeholders used when a setting is absent. They are sent as-is, so an
// unconfigured run fails at the service rather than locally.
const (
	PlaceholderProjectEndpoint     = "<project endpoint>"
	PlaceholderModelDeploymentName = "<model deployment name>"
	PlaceholderAgentName           = "<agent name>"
)

const (
	// Instructions is the fixed system prompt of the provisioned agent.
	Instructions = "You are a helpful assistant that answers general questions"
	// Question is the user message that seeds the conversation.
	Question = "What is the size of France in square miles?"
)

// Settings are the quickstart inputs.
type Settings struct {
	ProjectEndpoint     string
	ModelDeploymentName string
	AgentName           string
}

// LoadSettings reads settings from the environment, substituting the
// placeholder for anything unset or empty.
func LoadSettings() Settings {
	return Settings{
		ProjectEndpoint:     envOr(EnvProjectEndpoint, PlaceholderProjectEndpoint),
		ModelDeploymentName: envOr(EnvModelDeploymentName, PlaceholderModelDeploymentName),
		AgentName:           envOr(EnvAgentName, PlaceholderAgentName),
	}
}

// Override returns s with every non-empty field of o applied.
func (s Settings) Override(o Settings) Settings {
	if o.ProjectEndpoint != "" {
		s.ProjectEndpoint = o.ProjectEndpoint
	}
	if o.ModelDeploymentName != "" {
		s.ModelDeploymentName = o.ModelDeploymentName
	}
	if o.AgentName != "" {
		s.AgentName = o.AgentName
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
