package app

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/clients/azure"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

type Clients struct {
	Credential azcore.TokenCredential
	Blobs      azure.BlobService
	Search     azure.SearchService
	Agents     azure.AgentService
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	cred, err := azure.NewCredential()
	if err != nil {
		return Clients{}, fmt.Errorf("init credential: %w", err)
	}
	blobs, err := azure.NewBlobService(log, cred, cfg.Storage)
	if err != nil {
		return Clients{}, fmt.Errorf("init blob service: %w", err)
	}
	search, err := azure.NewSearchService(log, cfg.Search)
	if err != nil {
		return Clients{}, fmt.Errorf("init search service: %w", err)
	}
	agents, err := azure.NewAgentService(log, cred, cfg.Agents)
	if err != nil {
		return Clients{}, fmt.Errorf("init agent service: %w", err)
	}

	return Clients{
		Credential: cred,
		Blobs:      blobs,
		Search:     search,
		Agents:     agents,
	}, nil
}
