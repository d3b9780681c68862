// Command provision-agents creates the three RFP agents (analyzer, question
// answering, proposal writing) bound to the search index retrieval tool.
// One-time setup; the printed agent IDs go into the server's environment.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/clients/azure"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/envutil"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

const (
	agentModel = "gpt-4o"
	indexName  = "rfp-index"
)

const analyzerInstructions = "You are a proposal assistant. Your job is to analyze RFP documents and provide:\n" +
	"1. A concise summary of the RFP\n" +
	"2. A list of key requirements and evaluation criteria\n" +
	"3. Important keywords and themes\n" +
	"4. Any potential compliance concerns\n" +
	"Use the retrieved content from the RFP to ground your responses. Be clear, structured, and professional."

const questionInstructions = "You are an RFP assistant. Your job is to answer questions about the RFP documents. " +
	"Use the retrieved content from the RFP to provide accurate and detailed responses. " +
	"Be clear, structured, and professional."

const proposalInstructions = "You are a proposal writer. Your job is to generate a final RFP proposal based on the indexed content and user instructions. " +
	"Use the retrieved content from the RFP to draft a comprehensive and tailored proposal. " +
	"Ensure the proposal aligns with the requirements and evaluation criteria specified in the RFP. " +
	"Be clear, structured, and professional."

func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cred, err := azure.NewCredential()
	if err != nil {
		log.Fatal("Could not init credential", "error", err)
	}
	admin, err := azure.NewAgentAdminService(log, cred, azure.AgentsConfig{
		Endpoint: envutil.Str("AI_PROJECT_ENDPOINT", ""),
	})
	if err != nil {
		log.Fatal("Could not init agent admin client", "error", err)
	}

	searchEndpoint := envutil.Str("AZURE_SEARCH_SERVICE_ENDPOINT", "")
	if searchEndpoint == "" {
		log.Fatal("Missing env var AZURE_SEARCH_SERVICE_ENDPOINT")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	definitions := []azure.AgentDefinition{
		{Model: agentModel, Name: "rfp-analyzer-agent", Instructions: analyzerInstructions},
		{Model: agentModel, Name: "rfp-question-agent", Instructions: questionInstructions},
		{Model: agentModel, Name: "rfp-proposal-agent", Instructions: proposalInstructions},
	}
	for i := range definitions {
		definitions[i].Tools = []azure.AgentTool{{Type: "azure_ai_search"}}
		definitions[i].ToolResources = searchToolResources(searchEndpoint)
	}

	for _, def := range definitions {
		agent, err := admin.CreateAgent(ctx, def)
		if err != nil {
			log.Fatal("Create agent failed", "name", def.Name, "error", err)
		}
		log.Info("Agent created successfully", "name", agent.Name, "agent_id", agent.ID)
	}
}

func searchToolResources(endpoint string) map[string]any {
	return map[string]any{
		"azure_ai_search": map[string]any{
			"indexes": []map[string]any{
				{
					"index_name":      indexName,
					"search_endpoint": endpoint,
					"fields_mapping": map[string]string{
						"content":  "content",
						"title":    "fileName",
						"filepath": "guid",
					},
				},
			},
		},
	}
}
