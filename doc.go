// Package foundry is a small Go client for Azure AI Foundry projects.
//
// # Quick Start
//
// Create a client, provision an agent, and ask it a question:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/melionel/foundry-samples"
//	)
//
//	func main() {
//		// Endpoint falls back to AZURE_AI_PROJECT_ENDPOINT; a nil
//		// credential uses the default Azure credential chain.
//		client, err := foundry.NewClient("", nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Close()
//
//		ctx := context.Background()
//		agent, err := client.Agents.CreateVersion(ctx, "my-agent", foundry.CreateAgentVersionParams{
//			Definition: foundry.PromptAgent("gpt-4.1", "You are a helpful assistant"),
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		conv, err := client.Conversations.Create(ctx, foundry.ConversationCreateParams{
//			Items: []foundry.ConversationItem{foundry.UserMessage("Hello!")},
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		resp, err := client.Responses.Create(ctx, foundry.ResponseCreateParams{
//			Conversation: conv.ID,
//			Agent:        foundry.AgentRef(agent.Name),
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(resp.OutputText())
//	}
//
// # Core Features
//
//   - Agent versions (create, get, list)
//   - Conversations and responses on the project's OpenAI-compatible surface
//   - Default Azure credential chain, or any azcore.TokenCredential
//   - Context-aware operations for cancellation support
//   - Opt-in retry with exponential backoff (off by default)
//   - Request/response hooks and redacted debug logging
//
// # Environment Variables
//
//   - AZURE_AI_PROJECT_ENDPOINT: project endpoint, e.g.
//     https://<resource>.services.ai.azure.com/api/projects/<project>
//   - AZURE_AI_PROJECT_API_VERSION: optional API version (defaults to 2025-11-15-preview)
//   - AZURE_AI_PROJECT_API_KEY: optional key; skips the credential chain when set
//   - AZURE_AI_PROJECT_TIMEOUT: optional request timeout (no timeout by default)
//   - AZURE_AI_PROJECT_MAX_RETRIES: optional max retries (defaults to 0)
//   - AZURE_AI_PROJECT_DEBUG: log requests and responses to stderr
package foundry
