package handler

import (
	"net/http"

	"github.com/qorax-ai/sales-agent-platform/internal/events"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	bus events.Bus
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(bus events.Bus) *HealthHandler {
	return &HealthHandler{bus: bus}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready. The event bus is optional: only a configured
// but disconnected NATS bus makes the service not ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if nats, ok := h.bus.(*events.NATSBus); ok && !nats.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
