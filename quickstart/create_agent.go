package quickstart

import (
	"context"
	"fmt"
	"io"

	foundry "github.com/melionel/foundry-samples"
)

// AgentCreator creates agent versions. *foundry.AgentsAPI implements it.
type AgentCreator interface {
	CreateVersion(ctx context.Context, agentName string, params foundry.CreateAgentVersionParams) (foundry.AgentVersion, error)
}

// AgentRequest builds the name and create-version body for s. Fields set in
// def take precedence over s; a nil def yields the fixed quickstart agent.
func AgentRequest(s Settings, def *DefinitionFile) (string, foundry.CreateAgentVersionParams) {
	name := s.AgentName
	params := foundry.CreateAgentVersionParams{
		Definition: foundry.PromptAgent(s.ModelDeploymentName, Instructions),
	}
	if def == nil {
		return name, params
	}
	if def.Name != "" {
		name = def.Name
	}
	if def.Definition.Kind != "" {
		params.Definition.Kind = def.Definition.Kind
	}
	if def.Definition.Model != "" {
		params.Definition.Model = def.Definition.Model
	}
	if def.Definition.Instructions != "" {
		params.Definition.Instructions = def.Definition.Instructions
	}
	params.Definition.Temperature = def.Definition.Temperature
	params.Definition.TopP = def.Definition.TopP
	params.Description = def.Description
	params.Metadata = def.Metadata
	return name, params
}

// CreateAgent creates a new version of the named agent and reports it on
// out. Service and transport errors are returned as-is.
func CreateAgent(ctx context.Context, agents AgentCreator, name string, params foundry.CreateAgentVersionParams, out io.Writer) (foundry.AgentVersion, error) {
	fmt.Fprintln(out, "Creating agent...")
	agent, err := agents.CreateVersion(ctx, name, params)
	if err != nil {
		return foundry.AgentVersion{}, err
	}
	fmt.Fprintf(out, "Agent created (id: %s, name: %s, version: %s)\n", agent.ID, agent.Name, agent.Version)
	return agent, nil
}
