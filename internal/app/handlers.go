package app

import (
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/http"
	httpH "github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/http/handlers"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	RFP    *httpH.RFPHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		RFP:    httpH.NewRFPHandler(log, services.RFP),
	}
}

func wireServer(log *logger.Logger, handlers Handlers) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:           log,
		HealthHandler: handlers.Health,
		RFPHandler:    handlers.RFP,
	})
}
