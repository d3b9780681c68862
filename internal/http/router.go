package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/http/handlers"
	httpMW "github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/http/middleware"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

type RouterConfig struct {
	Log           *logger.Logger
	HealthHandler *httpH.HealthHandler
	RFPHandler    *httpH.RFPHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// RFP workflow
	if cfg.RFPHandler != nil {
		r.POST("/upload-rfp", cfg.RFPHandler.UploadRFP)
		r.POST("/ask-rfp-question", cfg.RFPHandler.AskQuestion)
		r.POST("/generate-rfp-proposal", cfg.RFPHandler.GenerateProposal)
		r.GET("/agent-status/:thread_id", cfg.RFPHandler.AgentStatus)
	}

	return r
}
