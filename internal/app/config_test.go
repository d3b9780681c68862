package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Address != ":8080" {
		t.Fatalf("Address: want=%q got=%q", ":8080", cfg.Address)
	}
	if cfg.Storage.Container != "rfp-documents" {
		t.Fatalf("Storage.Container: want=%q got=%q", "rfp-documents", cfg.Storage.Container)
	}
	if cfg.Search.IndexName != "rfp-index" {
		t.Fatalf("Search.IndexName: want=%q got=%q", "rfp-index", cfg.Search.IndexName)
	}
	if cfg.RFP.IndexerName != "rfp-indexer" {
		t.Fatalf("RFP.IndexerName: want=%q got=%q", "rfp-indexer", cfg.RFP.IndexerName)
	}
	if cfg.RFP.IndexPoll.Interval != 5*time.Second || cfg.RFP.IndexPoll.Attempts != 12 {
		t.Fatalf("IndexPoll: want=5s/12 got=%v/%d", cfg.RFP.IndexPoll.Interval, cfg.RFP.IndexPoll.Attempts)
	}
	if cfg.RFP.RunPoll.Interval != 5*time.Second || cfg.RFP.RunPoll.Attempts != 12 {
		t.Fatalf("RunPoll: want=5s/12 got=%v/%d", cfg.RFP.RunPoll.Interval, cfg.RFP.RunPoll.Attempts)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("AZURE_STORAGE_ACCOUNT_URL", "https://acct.blob.core.windows.net")
	t.Setenv("AZURE_STORAGE_CONTAINER_NAME", "proposals")
	t.Setenv("AZURE_SEARCH_SERVICE_ENDPOINT", "https://search.search.windows.net")
	t.Setenv("AZURE_SEARCH_INDEX_NAME", "proposals-index")
	t.Setenv("AZURE_SEARCH_API_KEY", "key123")
	t.Setenv("AI_PROJECT_ENDPOINT", "https://proj.services.ai.azure.com/api/projects/p1")
	t.Setenv("AZURE_SEARCH_INDEXER_NAME", "proposals-indexer")
	t.Setenv("RFP_ANALYZER_AGENT_ID", "asst_a")
	t.Setenv("RFP_QUESTION_AGENT_ID", "asst_q")
	t.Setenv("RFP_PROPOSAL_AGENT_ID", "asst_p")
	t.Setenv("INDEX_POLL_INTERVAL_SECONDS", "2")
	t.Setenv("INDEX_POLL_ATTEMPTS", "30")
	t.Setenv("RUN_POLL_INTERVAL_SECONDS", "1")
	t.Setenv("RUN_POLL_ATTEMPTS", "60")

	cfg := LoadConfig()

	if cfg.Address != ":9090" {
		t.Fatalf("Address: want=%q got=%q", ":9090", cfg.Address)
	}
	if cfg.Storage.AccountURL != "https://acct.blob.core.windows.net" {
		t.Fatalf("Storage.AccountURL: got=%q", cfg.Storage.AccountURL)
	}
	if cfg.Storage.Container != "proposals" {
		t.Fatalf("Storage.Container: got=%q", cfg.Storage.Container)
	}
	if cfg.Search.Endpoint != "https://search.search.windows.net" || cfg.Search.IndexName != "proposals-index" || cfg.Search.APIKey != "key123" {
		t.Fatalf("Search: got=%+v", cfg.Search)
	}
	if cfg.Agents.Endpoint != "https://proj.services.ai.azure.com/api/projects/p1" {
		t.Fatalf("Agents.Endpoint: got=%q", cfg.Agents.Endpoint)
	}
	if cfg.RFP.AnalyzerAgentID != "asst_a" || cfg.RFP.QuestionAgentID != "asst_q" || cfg.RFP.ProposalAgentID != "asst_p" {
		t.Fatalf("agent IDs: got=%+v", cfg.RFP)
	}
	if cfg.RFP.IndexPoll.Interval != 2*time.Second || cfg.RFP.IndexPoll.Attempts != 30 {
		t.Fatalf("IndexPoll: got=%v/%d", cfg.RFP.IndexPoll.Interval, cfg.RFP.IndexPoll.Attempts)
	}
	if cfg.RFP.RunPoll.Interval != 1*time.Second || cfg.RFP.RunPoll.Attempts != 60 {
		t.Fatalf("RunPoll: got=%v/%d", cfg.RFP.RunPoll.Interval, cfg.RFP.RunPoll.Attempts)
	}
}
