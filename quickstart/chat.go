package quickstart

import (
	"context"
	"fmt"
	"io"

	foundry "github.com/melionel/foundry-samples"
)

// ConversationCreator creates conversations. *foundry.ConversationsAPI implements it.
type ConversationCreator interface {
	Create(ctx context.Context, params foundry.ConversationCreateParams) (foundry.Conversation, error)
}

// ResponseCreator creates responses. *foundry.ResponsesAPI implements it.
type ResponseCreator interface {
	Create(ctx context.Context, params foundry.ResponseCreateParams) (foundry.Response, error)
}

// ChatWithAgent creates a conversation seeded with Question, asks the named
// agent to respond, and prints the output text. A conversation created
// before a failed response request is left on the server.
func ChatWithAgent(ctx context.Context, conversations ConversationCreator, responses ResponseCreator, agentName string, out io.Writer) (foundry.Response, error) {
	fmt.Fprintln(out, "\nCreating conversation with initial user message...")
	conversation, err := conversations.Create(ctx, foundry.ConversationCreateParams{
		Items: []foundry.ConversationItem{foundry.UserMessage(Question)},
	})
	if err != nil {
		return foundry.Response{}, err
	}
	fmt.Fprintf(out, "Created conversation with initial user message (id: %s)\n", conversation.ID)

	fmt.Fprintln(out, "\nGenerating response...")
	response, err := responses.Create(ctx, foundry.ResponseCreateParams{
		Conversation: conversation.ID,
		Agent:        foundry.AgentRef(agentName),
	})
	if err != nil {
		return foundry.Response{}, err
	}
	fmt.Fprintf(out, "Response output: %s\n", response.OutputText())
	return response, nil
}
