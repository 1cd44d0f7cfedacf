package quickstart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundry "github.com/melionel/foundry-samples"
)

type stubAgents struct {
	version foundry.AgentVersion
	err     error
	gotName string
}

func (s *stubAgents) CreateVersion(_ context.Context, name string, _ foundry.CreateAgentVersionParams) (foundry.AgentVersion, error) {
	s.gotName = name
	return s.version, s.err
}

type stubConversations struct {
	conv   foundry.Conversation
	err    error
	params foundry.ConversationCreateParams
}

func (s *stubConversations) Create(_ context.Context, params foundry.ConversationCreateParams) (foundry.Conversation, error) {
	s.params = params
	return s.conv, s.err
}

type stubResponses struct {
	resp   foundry.Response
	err    error
	params foundry.ResponseCreateParams
}

func (s *stubResponses) Create(_ context.Context, params foundry.ResponseCreateParams) (foundry.Response, error) {
	s.params = params
	return s.resp, s.err
}

func TestCreateAgentPrintsVersion(t *testing.T) {
	agents := &stubAgents{version: foundry.AgentVersion{ID: "my-agent:1", Name: "my-agent", Version: "1"}}
	var out bytes.Buffer

	v, err := CreateAgent(context.Background(), agents, "my-agent", foundry.CreateAgentVersionParams{}, &out)
	require.NoError(t, err)
	require.Equal(t, "1", v.Version)
	require.Equal(t, "my-agent", agents.gotName)
	require.Equal(t, "Creating agent...\nAgent created (id: my-agent:1, name: my-agent, version: 1)\n", out.String())
}

func TestCreateAgentReturnsServiceError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer

	_, err := CreateAgent(context.Background(), &stubAgents{err: boom}, "a", foundry.CreateAgentVersionParams{}, &out)
	require.ErrorIs(t, err, boom)
	require.NotContains(t, out.String(), "Agent created")
}

func TestChatWithAgentPrintsOutput(t *testing.T) {
	convs := &stubConversations{conv: foundry.Conversation{ID: "conv_1"}}
	resps := &stubResponses{resp: foundry.Response{Output: []foundry.OutputItem{{
		Type:    "message",
		Content: []foundry.OutputContent{{Type: "output_text", Text: "About 213,000 square miles."}},
	}}}}
	var out bytes.Buffer

	_, err := ChatWithAgent(context.Background(), convs, resps, "trivia", &out)
	require.NoError(t, err)

	require.Equal(t, []foundry.ConversationItem{foundry.UserMessage(Question)}, convs.params.Items)
	require.Equal(t, "conv_1", resps.params.Conversation)
	require.Equal(t, foundry.AgentRef("trivia"), resps.params.Agent)
	require.Equal(t,
		"\nCreating conversation with initial user message...\n"+
			"Created conversation with initial user message (id: conv_1)\n"+
			"\nGenerating response...\n"+
			"Response output: About 213,000 square miles.\n",
		out.String())
}

func TestChatWithAgentStopsWhenConversationFails(t *testing.T) {
	boom := errors.New("boom")
	resps := &stubResponses{}
	var out bytes.Buffer

	_, err := ChatWithAgent(context.Background(), &stubConversations{err: boom}, resps, "trivia", &out)
	require.ErrorIs(t, err, boom)
	require.Nil(t, resps.params.Agent, "no response is requested")
	require.NotContains(t, out.String(), "Generating response")
}

type fakeCredential struct {
	err   error
	calls int32
}

func (f *fakeCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: "tok", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// fakeProject serves just enough of a project endpoint for both workflows.
type fakeProject struct {
	mu            sync.Mutex
	calls         int32
	versions      map[string]int
	conversations []string
}

func (p *fakeProject) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&p.calls, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/projects/p/agents/trivia/versions":
		if p.versions == nil {
			p.versions = map[string]int{}
		}
		p.versions["trivia"]++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "trivia:" + strconv.Itoa(p.versions["trivia"]),
			"name":    "trivia",
			"version": strconv.Itoa(p.versions["trivia"]),
		})
	case r.Method == http.MethodPost && r.URL.Path == "/api/projects/p/openai/conversations":
		id := "conv_" + strconv.Itoa(len(p.conversations)+1)
		p.conversations = append(p.conversations, id)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "object": "conversation"})
	case r.Method == http.MethodPost && r.URL.Path == "/api/projects/p/openai/responses":
		var body struct {
			Conversation string `json:"conversation"`
			Agent        struct {
				Name string `json:"name"`
			} `json:"agent"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if p.versions[body.Agent.Name] == 0 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"Agent ` + body.Agent.Name + ` not found"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           "resp_1",
			"status":       "completed",
			"conversation": map[string]any{"id": body.Conversation},
			"output": []any{map[string]any{
				"type":    "message",
				"role":    "assistant",
				"content": []any{map[string]any{"type": "output_text", "text": "France is about 213,000 square miles."}},
			}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newProjectClient(t *testing.T, url string, cred azcore.TokenCredential) *foundry.ProjectClient {
	t.Helper()
	client, err := foundry.NewClientWithConfig(foundry.Config{Endpoint: url + "/api/projects/p", Credential: cred})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestQuickstartEndToEnd(t *testing.T) {
	project := &fakeProject{}
	server := httptest.NewServer(project)
	defer server.Close()

	client := newProjectClient(t, server.URL, &fakeCredential{})
	settings := Settings{ProjectEndpoint: server.URL, ModelDeploymentName: "gpt-4o", AgentName: "trivia"}

	var out bytes.Buffer
	name, params := AgentRequest(settings, nil)
	first, err := CreateAgent(context.Background(), client.Agents, name, params, &out)
	require.NoError(t, err)
	second, err := CreateAgent(context.Background(), client.Agents, name, params, &out)
	require.NoError(t, err)
	assert.Equal(t, "1", first.Version)
	assert.Equal(t, "2", second.Version)
	assert.Equal(t, settings.AgentName, second.Name)

	out.Reset()
	resp, err := ChatWithAgent(context.Background(), client.Conversations, client.Responses, settings.AgentName, &out)
	require.NoError(t, err)
	require.Equal(t, "conv_1", resp.Conversation.ID)
	require.Contains(t, out.String(), "Created conversation with initial user message (id: conv_1)")
	require.Contains(t, out.String(), "Response output: France is about 213,000 square miles.")
}

func TestQuickstartUnknownAgentLeavesConversation(t *testing.T) {
	project := &fakeProject{}
	server := httptest.NewServer(project)
	defer server.Close()

	client := newProjectClient(t, server.URL, &fakeCredential{})

	var out bytes.Buffer
	_, err := ChatWithAgent(context.Background(), client.Conversations, client.Responses, "ghost", &out)

	var notFound *foundry.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Contains(t, notFound.Message, "ghost")
	require.Equal(t, []string{"conv_1"}, project.conversations)
	require.NotContains(t, out.String(), "Response output")
}

func TestQuickstartCredentialFailureSendsNothing(t *testing.T) {
	project := &fakeProject{}
	server := httptest.NewServer(project)
	defer server.Close()

	cred := &fakeCredential{err: errors.New("please run az login")}
	client := newProjectClient(t, server.URL, cred)

	var out bytes.Buffer
	_, err := CreateAgent(context.Background(), client.Agents, "trivia", foundry.CreateAgentVersionParams{Definition: foundry.PromptAgent("gpt-4o", Instructions)}, &out)
	var credErr *foundry.CredentialError
	require.ErrorAs(t, err, &credErr)

	_, err = ChatWithAgent(context.Background(), client.Conversations, client.Responses, "trivia", &out)
	require.ErrorAs(t, err, &credErr)

	require.Equal(t, int32(0), atomic.LoadInt32(&project.calls))
	require.Equal(t, int32(2), atomic.LoadInt32(&cred.calls))
}
