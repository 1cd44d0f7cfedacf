package foundry

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
)

// ResponseCreateParams requests a model response. Either Conversation or
// Input (or both) supply the context; Agent selects the agent that answers.
type ResponseCreateParams struct {
	Conversation string             `json:"conversation,omitempty"`
	Input        []ConversationItem `json:"input,omitempty"`
	Agent        *AgentReference    `json:"agent,omitempty"`
	Metadata     map[string]string  `json:"metadata,omitempty"`
}

// OutputContent is one content part of an output message.
type OutputContent struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

// OutputItem is one item produced by a response.
type OutputItem struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Role    string          `json:"role,omitempty"`
	Status  string          `json:"status,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

// ResponseError is the error object of a failed response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConversationRef points at the conversation a response belongs to.
type ConversationRef struct {
	ID string `json:"id"`
}

// Response is a generated model response.
type Response struct {
	ID           string           `json:"id"`
	Object       string           `json:"object"`
	CreatedAt    int64            `json:"created_at"`
	Status       string           `json:"status"`
	Model        string           `json:"model,omitempty"`
	Output       []OutputItem     `json:"output"`
	Conversation *ConversationRef `json:"conversation,omitempty"`
	Agent        *AgentReference  `json:"agent,omitempty"`
	Error        *ResponseError   `json:"error,omitempty"`
}

// OutputText concatenates the text of every output_text part of the
// response's message items, in order.
func (r Response) OutputText() string {
	var b strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String()
}

// ResponsesAPI generates responses on the project's OpenAI surface.
type ResponsesAPI struct {
	client *openai.Client
}

// Create requests a response.
func (r *ResponsesAPI) Create(ctx context.Context, params ResponseCreateParams) (Response, error) {
	if params.Conversation == "" && len(params.Input) == 0 {
		return Response{}, errors.New("create response: conversation or input is required")
	}
	if params.Agent != nil && params.Agent.Name == "" {
		return Response{}, ErrEmptyAgentName
	}
	var resp Response
	if err := r.client.Post(ctx, "responses", params, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Get fetches a response by id.
func (r *ResponsesAPI) Get(ctx context.Context, responseID string) (Response, error) {
	id, err := pathParam("response_id", responseID)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := r.client.Get(ctx, "responses/"+id, nil, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}
