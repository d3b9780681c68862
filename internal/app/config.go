package app

import (
	"time"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/clients/azure"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/envutil"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/services"
)

type Config struct {
	Address string
	Storage azure.BlobConfig
	Search  azure.SearchConfig
	Agents  azure.AgentsConfig
	RFP     services.RFPConfig
}

func LoadConfig() Config {
	indexPoll := services.PollConfig{
		Interval: envutil.Seconds("INDEX_POLL_INTERVAL_SECONDS", 5*time.Second),
		Attempts: envutil.Int("INDEX_POLL_ATTEMPTS", 12),
	}
	runPoll := services.PollConfig{
		Interval: envutil.Seconds("RUN_POLL_INTERVAL_SECONDS", 5*time.Second),
		Attempts: envutil.Int("RUN_POLL_ATTEMPTS", 12),
	}
	return Config{
		Address: envutil.Str("ADDRESS", ":8080"),
		Storage: azure.BlobConfig{
			AccountURL: envutil.Str("AZURE_STORAGE_ACCOUNT_URL", ""),
			Container:  envutil.Str("AZURE_STORAGE_CONTAINER_NAME", "rfp-documents"),
		},
		Search: azure.SearchConfig{
			Endpoint:  envutil.Str("AZURE_SEARCH_SERVICE_ENDPOINT", ""),
			IndexName: envutil.Str("AZURE_SEARCH_INDEX_NAME", "rfp-index"),
			APIKey:    envutil.Str("AZURE_SEARCH_API_KEY", ""),
		},
		Agents: azure.AgentsConfig{
			Endpoint: envutil.Str("AI_PROJECT_ENDPOINT", ""),
		},
		RFP: services.RFPConfig{
			IndexerName:     envutil.Str("AZURE_SEARCH_INDEXER_NAME", "rfp-indexer"),
			AnalyzerAgentID: envutil.Str("RFP_ANALYZER_AGENT_ID", ""),
			QuestionAgentID: envutil.Str("RFP_QUESTION_AGENT_ID", ""),
			ProposalAgentID: envutil.Str("RFP_PROPOSAL_AGENT_ID", ""),
			IndexPoll:       indexPoll,
			RunPoll:         runPoll,
		},
	}
}
