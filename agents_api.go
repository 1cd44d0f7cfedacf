package foundry

import (
	"context"
	"fmt"
)

// AgentsAPI manages agent operations.
type AgentsAPI struct {
	httpClient *httpClient
	Versions   *AgentVersionsAPI
}

// AgentVersionsAPI reads the versions of a named agent.
type AgentVersionsAPI struct {
	agentsAPI *AgentsAPI
}

func newAgentsAPI(httpClient *httpClient) *AgentsAPI {
	api := &AgentsAPI{httpClient: httpClient}
	api.Versions = &AgentVersionsAPI{agentsAPI: api}
	return api
}

// CreateVersion creates a new version of the named agent. The agent is
// created on first use; later calls with the same name add versions and
// never change earlier ones.
func (a *AgentsAPI) CreateVersion(ctx context.Context, agentName string, params CreateAgentVersionParams) (AgentVersion, error) {
	if agentName == "" {
		return AgentVersion{}, ErrEmptyAgentName
	}
	if params.Definition.Kind == "" {
		params.Definition.Kind = AgentKindPrompt
	}
	if params.Definition.Kind == AgentKindPrompt && params.Definition.Model == "" {
		return AgentVersion{}, fmt.Errorf("prompt agent %s requires a model", agentName)
	}
	name, err := pathParam("agent_name", agentName)
	if err != nil {
		return AgentVersion{}, err
	}
	var resp AgentVersion
	if err := a.httpClient.postJSONWithContext(ctx, fmt.Sprintf("/agents/%s/versions", name), params, nil, &resp); err != nil {
		return AgentVersion{}, err
	}
	return resp, nil
}

// Get fetches an agent by name.
func (a *AgentsAPI) Get(ctx context.Context, agentName string) (Agent, error) {
	if agentName == "" {
		return Agent{}, ErrEmptyAgentName
	}
	name, err := pathParam("agent_name", agentName)
	if err != nil {
		return Agent{}, err
	}
	var resp Agent
	if err := a.httpClient.getWithContext(ctx, "/agents/"+name, nil, &resp); err != nil {
		return Agent{}, fmt.Errorf("get agent %s: %w", agentName, err)
	}
	return resp, nil
}

// List returns one page of agents.
func (a *AgentsAPI) List(ctx context.Context, params ListParams) (ListResponse[Agent], error) {
	query, err := params.query()
	if err != nil {
		return ListResponse[Agent]{}, err
	}
	var resp ListResponse[Agent]
	if err := a.httpClient.getWithContext(ctx, "/agents", query, &resp); err != nil {
		return ListResponse[Agent]{}, err
	}
	return resp, nil
}

// List returns one page of versions for the named agent.
func (v *AgentVersionsAPI) List(ctx context.Context, agentName string, params ListParams) (ListResponse[AgentVersion], error) {
	if agentName == "" {
		return ListResponse[AgentVersion]{}, ErrEmptyAgentName
	}
	name, err := pathParam("agent_name", agentName)
	if err != nil {
		return ListResponse[AgentVersion]{}, err
	}
	query, err := params.query()
	if err != nil {
		return ListResponse[AgentVersion]{}, err
	}
	var resp ListResponse[AgentVersion]
	if err := v.agentsAPI.httpClient.getWithContext(ctx, fmt.Sprintf("/agents/%s/versions", name), query, &resp); err != nil {
		return ListResponse[AgentVersion]{}, fmt.Errorf("list versions of agent %s: %w", agentName, err)
	}
	return resp, nil
}

// Get fetches a specific version of the named agent.
func (v *AgentVersionsAPI) Get(ctx context.Context, agentName, version string) (AgentVersion, error) {
	if agentName == "" {
		return AgentVersion{}, ErrEmptyAgentName
	}
	name, err := pathParam("agent_name", agentName)
	if err != nil {
		return AgentVersion{}, err
	}
	ver, err := pathParam("agent_version", version)
	if err != nil {
		return AgentVersion{}, err
	}
	var resp AgentVersion
	if err := v.agentsAPI.httpClient.getWithContext(ctx, fmt.Sprintf("/agents/%s/versions/%s", name, ver), nil, &resp); err != nil {
		return AgentVersion{}, fmt.Errorf("get agent %s version %s: %w", agentName, version, err)
	}
	return resp, nil
}
