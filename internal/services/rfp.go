package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/clients/azure"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/apierr"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

const (
	StatusCompleted = "completed"
	StatusRunning   = "running"

	uploadSuccessMessage = "Document uploaded, indexed, and analyzed successfully"

	analysisPromptFmt       = "Please analyze the RFP document with GUID: %s. Provide a summary, key requirements, keywords, and any compliance concerns."
	questionPromptFmt       = "RFP GUID: %s\n\n%s"
	proposalPromptFmt       = "RFP GUID: %s\n\nPlease generate a proposal."
	proposalInstructionsFmt = "\n\nAdditional instructions: %s"
)

type RFPConfig struct {
	IndexerName     string
	AnalyzerAgentID string
	QuestionAgentID string
	ProposalAgentID string
	IndexPoll       PollConfig
	RunPoll         PollConfig
}

type UploadResult struct {
	GUID     string
	ThreadID string
	Message  string
}

type ThreadStatus struct {
	Status      string
	LastMessage string
}

// RFPService orchestrates the three external services. It holds no state of
// its own: documents live in blob storage, records in the search index, and
// conversations in the agent service.
type RFPService interface {
	UploadAndAnalyze(ctx context.Context, fileName, contentType string, file io.Reader) (*UploadResult, error)
	AskQuestion(ctx context.Context, guid, question string) (string, error)
	GenerateProposal(ctx context.Context, guid, instructions string) (string, error)
	ThreadStatus(ctx context.Context, threadID string) (*ThreadStatus, error)
}

type rfpService struct {
	log    *logger.Logger
	blobs  azure.BlobService
	search azure.SearchService
	agents azure.AgentService
	cfg    RFPConfig
	sleep  SleepFunc
}

// NewRFPService wires the orchestrator. sleep may be nil, in which case a
// real context-aware sleep is used; tests pass a virtual clock.
func NewRFPService(
	log *logger.Logger,
	blobs azure.BlobService,
	search azure.SearchService,
	agents azure.AgentService,
	cfg RFPConfig,
	sleep SleepFunc,
) RFPService {
	if sleep == nil {
		sleep = sleepContext
	}
	return &rfpService{
		log:    log.With("service", "RFPService"),
		blobs:  blobs,
		search: search,
		agents: agents,
		cfg:    cfg,
		sleep:  sleep,
	}
}

func (s *rfpService) UploadAndAnalyze(ctx context.Context, fileName, contentType string, file io.Reader) (*UploadResult, error) {
	guid := uuid.New().String()
	log := s.log.With("guid", guid)
	log.Info("uploading rfp document", "file_name", fileName, "content_type", contentType)

	if err := s.blobs.Upload(ctx, guid, file, contentType); err != nil {
		return nil, apierr.New(http.StatusBadGateway, "storage_write_failed", fmt.Errorf("store document %s: %w", guid, err))
	}
	if err := s.search.RunIndexer(ctx, s.cfg.IndexerName); err != nil {
		return nil, apierr.New(http.StatusBadGateway, "indexer_trigger_failed", fmt.Errorf("trigger indexer %s: %w", s.cfg.IndexerName, err))
	}

	err := pollUntil(ctx, s.cfg.IndexPoll, s.sleep, func(ctx context.Context) (bool, error) {
		_, err := s.search.GetDocument(ctx, guid)
		if errors.Is(err, azure.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, apierr.New(http.StatusBadGateway, "index_lookup_failed", err)
		}
		return true, nil
	})
	if errors.Is(err, ErrPollExhausted) {
		return nil, apierr.New(http.StatusGatewayTimeout, "index_poll_timeout",
			fmt.Errorf("document %s not visible in index within %s", guid, s.cfg.IndexPoll.Budget()))
	}
	if err != nil {
		return nil, err
	}
	log.Info("document visible in index")

	answer, threadID, err := s.runAgent(ctx, s.cfg.AnalyzerAgentID, fmt.Sprintf(analysisPromptFmt, guid))
	if err != nil {
		return nil, err
	}
	log.Info("rfp analysis completed", "thread_id", threadID, "answer_chars", len(answer))

	return &UploadResult{GUID: guid, ThreadID: threadID, Message: uploadSuccessMessage}, nil
}

func (s *rfpService) AskQuestion(ctx context.Context, guid, question string) (string, error) {
	answer, threadID, err := s.runAgent(ctx, s.cfg.QuestionAgentID, fmt.Sprintf(questionPromptFmt, guid, question))
	if err != nil {
		return "", err
	}
	s.log.Info("rfp question answered", "guid", guid, "thread_id", threadID)
	return answer, nil
}

func (s *rfpService) GenerateProposal(ctx context.Context, guid, instructions string) (string, error) {
	prompt := fmt.Sprintf(proposalPromptFmt, guid)
	if instructions != "" {
		prompt += fmt.Sprintf(proposalInstructionsFmt, instructions)
	}
	proposal, threadID, err := s.runAgent(ctx, s.cfg.ProposalAgentID, prompt)
	if err != nil {
		return "", err
	}
	s.log.Info("rfp proposal generated", "guid", guid, "thread_id", threadID)
	return proposal, nil
}

func (s *rfpService) ThreadStatus(ctx context.Context, threadID string) (*ThreadStatus, error) {
	messages, err := s.agents.ListMessages(ctx, threadID)
	if err != nil {
		if errors.Is(err, azure.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("thread %s: %w", threadID, err))
		}
		return nil, apierr.New(http.StatusBadGateway, "messages_fetch_failed", err)
	}
	text, ok := azure.LastTextByRole(messages, azure.RoleAssistant)
	if !ok {
		return &ThreadStatus{Status: StatusRunning}, nil
	}
	return &ThreadStatus{Status: StatusCompleted, LastMessage: text}, nil
}

// runAgent drives one full interaction: fresh thread, one user message, one
// run polled to a terminal state, newest assistant reply. Every request gets
// its own thread; threads are never reused.
func (s *rfpService) runAgent(ctx context.Context, agentID, prompt string) (answer, threadID string, err error) {
	thread, err := s.agents.CreateThread(ctx)
	if err != nil {
		return "", "", apierr.New(http.StatusBadGateway, "thread_create_failed", err)
	}
	if _, err := s.agents.CreateMessage(ctx, thread.ID, azure.RoleUser, prompt); err != nil {
		return "", "", apierr.New(http.StatusBadGateway, "message_post_failed", err)
	}
	run, err := s.agents.CreateRun(ctx, thread.ID, agentID)
	if err != nil {
		return "", "", apierr.New(http.StatusBadGateway, "run_start_failed", err)
	}

	err = pollUntil(ctx, s.cfg.RunPoll, s.sleep, func(ctx context.Context) (bool, error) {
		current, err := s.agents.GetRun(ctx, thread.ID, run.ID)
		if err != nil {
			return false, apierr.New(http.StatusBadGateway, "run_status_failed", err)
		}
		switch current.Status {
		case azure.RunStatusCompleted:
			return true, nil
		case azure.RunStatusFailed, azure.RunStatusCancelled:
			detail := ""
			if current.LastError != nil {
				detail = ": " + current.LastError.Message
			}
			return false, apierr.New(http.StatusBadGateway, "run_failed",
				fmt.Errorf("run %s ended with status %s%s", run.ID, current.Status, detail))
		default:
			return false, nil
		}
	})
	if errors.Is(err, ErrPollExhausted) {
		return "", "", apierr.New(http.StatusGatewayTimeout, "run_poll_timeout",
			fmt.Errorf("run %s did not finish within %s", run.ID, s.cfg.RunPoll.Budget()))
	}
	if err != nil {
		return "", "", err
	}

	messages, err := s.agents.ListMessages(ctx, thread.ID)
	if err != nil {
		return "", "", apierr.New(http.StatusBadGateway, "messages_fetch_failed", err)
	}
	text, ok := azure.LastTextByRole(messages, azure.RoleAssistant)
	if !ok {
		return "", "", apierr.New(http.StatusBadGateway, "no_agent_response", errors.New("no assistant response found"))
	}
	return text, thread.ID, nil
}
