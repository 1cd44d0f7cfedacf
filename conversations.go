package foundry

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
)

// ConversationItem is one entry in a conversation.
type ConversationItem struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content any    `json:"content,omitempty"`
	Status  string `json:"status,omitempty"`
}

// UserMessage returns a message item with role "user".
func UserMessage(text string) ConversationItem {
	return ConversationItem{Type: "message", Role: "user", Content: text}
}

// ConversationCreateParams seeds a new conversation.
type ConversationCreateParams struct {
	Items    []ConversationItem `json:"items,omitempty"`
	Metadata map[string]string  `json:"metadata,omitempty"`
}

// Conversation is a server-side ordered log of items.
type Conversation struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ConversationsAPI manages conversations on the project's OpenAI surface.
type ConversationsAPI struct {
	client *openai.Client
}

// Create creates a conversation, optionally seeded with items.
func (c *ConversationsAPI) Create(ctx context.Context, params ConversationCreateParams) (Conversation, error) {
	var resp Conversation
	if err := c.client.Post(ctx, "conversations", params, &resp); err != nil {
		return Conversation{}, err
	}
	if resp.ID == "" {
		return Conversation{}, errors.New("create conversation: response carried no id")
	}
	return resp, nil
}

// Get fetches a conversation by id.
func (c *ConversationsAPI) Get(ctx context.Context, conversationID string) (Conversation, error) {
	id, err := pathParam("conversation_id", conversationID)
	if err != nil {
		return Conversation{}, err
	}
	var resp Conversation
	if err := c.client.Get(ctx, "conversations/"+id, nil, &resp); err != nil {
		return Conversation{}, err
	}
	return resp, nil
}

// ListItems returns one page of the conversation's items.
func (c *ConversationsAPI) ListItems(ctx context.Context, conversationID string, params ListParams) (ListResponse[ConversationItem], error) {
	id, err := pathParam("conversation_id", conversationID)
	if err != nil {
		return ListResponse[ConversationItem]{}, err
	}
	query, err := params.query()
	if err != nil {
		return ListResponse[ConversationItem]{}, err
	}
	var resp ListResponse[ConversationItem]
	if err := c.client.Get(ctx, withQuery("conversations/"+id+"/items", query), nil, &resp); err != nil {
		return ListResponse[ConversationItem]{}, err
	}
	return resp, nil
}
