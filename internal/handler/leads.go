package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/qorax-ai/sales-agent-platform/internal/crm"
	"github.com/qorax-ai/sales-agent-platform/internal/middleware"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

// LeadHandler exposes captured leads to the sales team.
type LeadHandler struct {
	crm    crm.CRM
	logger *logger.Logger
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(sink crm.CRM, log *logger.Logger) *LeadHandler {
	return &LeadHandler{crm: sink, logger: log}
}

// List handles GET /api/v1/leads
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	leads, total, err := h.crm.ListLeads(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list leads")
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	writeJSON(w, http.StatusOK, model.ListLeadsResponse{Leads: leads, Total: total})
}

// Get handles GET /api/v1/leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")
	if err := middleware.ValidateLeadID(leadID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.crm.GetLead(r.Context(), leadID)
	if errors.Is(err, crm.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load lead")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}
