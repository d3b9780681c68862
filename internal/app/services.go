package app

import (
	"fmt"
	"strings"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/services"
)

type Services struct {
	RFP services.RFPService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	for name, id := range map[string]string{
		"RFP_ANALYZER_AGENT_ID": cfg.RFP.AnalyzerAgentID,
		"RFP_QUESTION_AGENT_ID": cfg.RFP.QuestionAgentID,
		"RFP_PROPOSAL_AGENT_ID": cfg.RFP.ProposalAgentID,
	} {
		if strings.TrimSpace(id) == "" {
			return Services{}, fmt.Errorf("missing env var %s", name)
		}
	}

	rfp := services.NewRFPService(log, clients.Blobs, clients.Search, clients.Agents, cfg.RFP, nil)
	return Services{RFP: rfp}, nil
}
