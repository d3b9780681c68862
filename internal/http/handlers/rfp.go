package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/http/response"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/apierr"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/services"
)

type RFPHandler struct {
	log *logger.Logger
	rfp services.RFPService
}

func NewRFPHandler(log *logger.Logger, rfp services.RFPService) *RFPHandler {
	return &RFPHandler{
		log: log.With("handler", "RFPHandler"),
		rfp: rfp,
	}
}

type uploadResponse struct {
	GUID     string `json:"guid"`
	ThreadID string `json:"thread_id"`
	Message  string `json:"message"`
}

type questionRequest struct {
	GUID     string `json:"guid" binding:"required"`
	Question string `json:"question" binding:"required"`
}

type questionResponse struct {
	Response string `json:"response"`
}

type proposalRequest struct {
	GUID         string `json:"guid" binding:"required"`
	Instructions string `json:"instructions"`
}

type proposalResponse struct {
	Proposal string `json:"proposal"`
}

type statusResponse struct {
	Status      string  `json:"status"`
	LastMessage *string `json:"last_message"`
}

// POST /upload-rfp
func (h *RFPHandler) UploadRFP(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "malformed_input", errors.New("multipart field 'file' is required"))
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		// Sniff from the first block; reopen so the upload reads from the start.
		if sniffFile, err := fh.Open(); err == nil {
			buf := make([]byte, 512)
			n, _ := sniffFile.Read(buf)
			_ = sniffFile.Close()
			contentType = http.DetectContentType(buf[:n])
		}
	}
	file, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "malformed_input", err)
		return
	}
	defer file.Close()

	result, err := h.rfp.UploadAndAnalyze(c.Request.Context(), fh.Filename, contentType, file)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, uploadResponse{
		GUID:     result.GUID,
		ThreadID: result.ThreadID,
		Message:  result.Message,
	})
}

// POST /ask-rfp-question
func (h *RFPHandler) AskQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "malformed_input", err)
		return
	}
	answer, err := h.rfp.AskQuestion(c.Request.Context(), req.GUID, req.Question)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, questionResponse{Response: answer})
}

// POST /generate-rfp-proposal
func (h *RFPHandler) GenerateProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "malformed_input", err)
		return
	}
	proposal, err := h.rfp.GenerateProposal(c.Request.Context(), req.GUID, strings.TrimSpace(req.Instructions))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, proposalResponse{Proposal: proposal})
}

// GET /agent-status/:thread_id
func (h *RFPHandler) AgentStatus(c *gin.Context) {
	threadID := strings.TrimSpace(c.Param("thread_id"))
	if threadID == "" {
		response.RespondError(c, http.StatusBadRequest, "malformed_input", errors.New("thread_id is required"))
		return
	}
	status, err := h.rfp.ThreadStatus(c.Request.Context(), threadID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	resp := statusResponse{Status: status.Status}
	if status.LastMessage != "" {
		resp.LastMessage = &status.LastMessage
	}
	response.RespondOK(c, resp)
}

func (h *RFPHandler) respondServiceError(c *gin.Context, err error) {
	code := apierr.CodeOf(err)
	if code == "" {
		code = "internal_error"
	}
	response.RespondError(c, apierr.StatusCode(err), code, err)
}
