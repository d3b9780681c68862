package azure

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

// AgentAdminService covers agent provisioning. Invoked by the
// provision-agents command, never on the request path.
type AgentAdminService interface {
	CreateAgent(ctx context.Context, def AgentDefinition) (*Agent, error)
}

type AgentTool struct {
	Type string `json:"type"`
}

type AgentDefinition struct {
	Model         string         `json:"model"`
	Name          string         `json:"name"`
	Instructions  string         `json:"instructions"`
	Tools         []AgentTool    `json:"tools,omitempty"`
	ToolResources map[string]any `json:"tool_resources,omitempty"`
}

type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

func NewAgentAdminService(log *logger.Logger, cred azcore.TokenCredential, cfg AgentsConfig) (AgentAdminService, error) {
	return newAgentClient(log, cred, cfg)
}

func (c *agentClient) CreateAgent(ctx context.Context, def AgentDefinition) (*Agent, error) {
	if strings.TrimSpace(def.Model) == "" {
		return nil, fmt.Errorf("agent model required")
	}
	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("agent name required")
	}
	agent, err := doAgentJSON[Agent](c, ctx, http.MethodPost, "/assistants", nil, def)
	if err != nil {
		return nil, err
	}
	c.log.Info("agent provisioned", "name", agent.Name, "agent_id", agent.ID, "model", agent.Model)
	return agent, nil
}
