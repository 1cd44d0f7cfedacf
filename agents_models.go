package foundry

// AgentKindPrompt is the definition kind for model + instructions agents.
const AgentKindPrompt = "prompt"

// AgentDefinition describes what an agent version runs.
type AgentDefinition struct {
	Kind         string   `json:"kind"`
	Model        string   `json:"model,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
}

// PromptAgent builds a prompt agent definition.
func PromptAgent(model, instructions string) AgentDefinition {
	return AgentDefinition{Kind: AgentKindPrompt, Model: model, Instructions: instructions}
}

// CreateAgentVersionParams is the body of a create-version request.
type CreateAgentVersionParams struct {
	Definition  AgentDefinition   `json:"definition"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// AgentVersion is one immutable version of a named agent.
type AgentVersion struct {
	Object      string            `json:"object"`
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description,omitempty"`
	CreatedAt   int64             `json:"created_at"`
	Definition  AgentDefinition   `json:"definition"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Agent is a named agent and its most recent version.
type Agent struct {
	Object   string `json:"object"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Versions struct {
		Latest AgentVersion `json:"latest"`
	} `json:"versions"`
}

// AgentReference binds a response request to a named agent.
type AgentReference struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// AgentRef returns a reference to the latest version of the named agent.
func AgentRef(name string) *AgentReference {
	return &AgentReference{Type: "agent_reference", Name: name}
}
