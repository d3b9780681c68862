package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	RunStatusQueued     = "queued"
	RunStatusInProgress = "in_progress"
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
	RunStatusCancelled  = "cancelled"

	agentsTokenScope = "https://ai.azure.com/.default"
)

type AgentsConfig struct {
	// Endpoint is the AI project endpoint, e.g.
	// https://myresource.services.ai.azure.com/api/projects/myproject
	Endpoint   string
	APIVersion string
	Timeout    time.Duration
}

// AgentService is the conversation surface of the hosted agent service:
// threads, messages, and runs against pre-provisioned agents.
type AgentService interface {
	CreateThread(ctx context.Context) (*Thread, error)
	CreateMessage(ctx context.Context, threadID, role, content string) (*Message, error)
	CreateRun(ctx context.Context, threadID, agentID string) (*Run, error)
	GetRun(ctx context.Context, threadID, runID string) (*Run, error)
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
}

type Thread struct {
	ID string `json:"id"`
}

type Run struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Status    string    `json:"status"`
	LastError *RunError `json:"last_error,omitempty"`
}

type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Terminal reports whether the run has reached a final state.
func (r *Run) Terminal() bool {
	switch r.Status {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

type Message struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	CreatedAt int64            `json:"created_at"`
	Content   []MessageContent `json:"content"`
}

type MessageContent struct {
	Type string       `json:"type"`
	Text *MessageText `json:"text,omitempty"`
}

type MessageText struct {
	Value string `json:"value"`
}

// Text joins the message's text parts.
func (m *Message) Text() string {
	var b strings.Builder
	for _, part := range m.Content {
		if part.Type == "text" && part.Text != nil {
			b.WriteString(part.Text.Value)
		}
	}
	return b.String()
}

// LastTextByRole returns the text of the newest message authored by role.
// Messages are expected newest-first, as ListMessages returns them.
func LastTextByRole(messages []Message, role string) (string, bool) {
	for i := range messages {
		if messages[i].Role != role {
			continue
		}
		if text := messages[i].Text(); text != "" {
			return text, true
		}
	}
	return "", false
}

type agentClient struct {
	log    *logger.Logger
	cfg    AgentsConfig
	http   *http.Client
	tokens *tokenSource
}

func NewAgentService(log *logger.Logger, cred azcore.TokenCredential, cfg AgentsConfig) (AgentService, error) {
	return newAgentClient(log, cred, cfg)
}

func newAgentClient(log *logger.Logger, cred azcore.TokenCredential, cfg AgentsConfig) (*agentClient, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cred == nil {
		return nil, fmt.Errorf("credential required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("missing agent service endpoint")
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = "2025-05-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &agentClient{
		log:    log.With("client", "AgentClient"),
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		tokens: newTokenSource(cred, agentsTokenScope),
	}, nil
}

func (c *agentClient) CreateThread(ctx context.Context) (*Thread, error) {
	return doAgentJSON[Thread](c, ctx, http.MethodPost, "/threads", nil, struct{}{})
}

func (c *agentClient) CreateMessage(ctx context.Context, threadID, role, content string) (*Message, error) {
	if strings.TrimSpace(threadID) == "" {
		return nil, fmt.Errorf("threadID required")
	}
	body := map[string]string{"role": role, "content": content}
	return doAgentJSON[Message](c, ctx, http.MethodPost, "/threads/"+url.PathEscape(threadID)+"/messages", nil, body)
}

func (c *agentClient) CreateRun(ctx context.Context, threadID, agentID string) (*Run, error) {
	if strings.TrimSpace(threadID) == "" {
		return nil, fmt.Errorf("threadID required")
	}
	if strings.TrimSpace(agentID) == "" {
		return nil, fmt.Errorf("agentID required")
	}
	body := map[string]string{"assistant_id": agentID}
	return doAgentJSON[Run](c, ctx, http.MethodPost, "/threads/"+url.PathEscape(threadID)+"/runs", nil, body)
}

func (c *agentClient) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	if strings.TrimSpace(threadID) == "" || strings.TrimSpace(runID) == "" {
		return nil, fmt.Errorf("threadID and runID required")
	}
	path := "/threads/" + url.PathEscape(threadID) + "/runs/" + url.PathEscape(runID)
	return doAgentJSON[Run](c, ctx, http.MethodGet, path, nil, nil)
}

type messageList struct {
	Data    []Message `json:"data"`
	HasMore bool      `json:"has_more"`
}

func (c *agentClient) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	if strings.TrimSpace(threadID) == "" {
		return nil, fmt.Errorf("threadID required")
	}
	q := url.Values{}
	q.Set("order", "desc")
	path := "/threads/" + url.PathEscape(threadID) + "/messages"
	list, err := doAgentJSON[messageList](c, ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	return list.Data, nil
}

func doAgentJSON[T any](c *agentClient, ctx context.Context, method, path string, query url.Values, body any) (*T, error) {
	q := url.Values{}
	q.Set("api-version", c.cfg.APIVersion)
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u := strings.TrimRight(c.cfg.Endpoint, "/") + path + "?" + q.Encode()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return nil, err
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire agent service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("agents %s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agents %s %s http %d: %s", method, path, resp.StatusCode, string(raw))
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("agents %s %s decode: %w", method, path, err)
	}
	return &out, nil
}
