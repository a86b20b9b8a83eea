package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qorax-ai/sales-agent-platform/internal/middleware"
	"github.com/qorax-ai/sales-agent-platform/internal/service"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

// CopilotHandler handles seller copilot endpoints.
type CopilotHandler struct {
	copilot *service.CopilotService
	logger  *logger.Logger
}

// NewCopilotHandler creates a new copilot handler.
func NewCopilotHandler(copilot *service.CopilotService, log *logger.Logger) *CopilotHandler {
	return &CopilotHandler{copilot: copilot, logger: log}
}

// AnalyzeRequest carries the customer message the seller pasted.
type AnalyzeRequest struct {
	CustomerMessage string `json:"customer_message"`
}

// Analyze handles POST /api/v1/copilot/{session}/analyze
func (h *CopilotHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	if err := middleware.ValidateCopilotSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageContent(req.CustomerMessage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	advice, err := h.copilot.Analyze(r.Context(), sessionID, req.CustomerMessage)
	if err != nil {
		h.logger.Error("failed to analyze message")
		writeError(w, http.StatusInternalServerError, "failed to analyze message")
		return
	}
	writeJSON(w, http.StatusOK, advice)
}
