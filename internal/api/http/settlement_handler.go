package http

import (
	"net/http"

	"fleetdesk-backend/internal/service"
)

type SettlementHandler struct {
	settlements service.SettlementService
}

func NewSettlementHandler(settlements service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

// Preview shows the settlement position of a rental without committing
// anything. The {id} path segment is the rental id.
func (h *SettlementHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	preview, err := h.settlements.Preview(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

// Commit settles the rental. Settling twice answers 409.
func (h *SettlementHandler) Commit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	rental, err := h.settlements.Commit(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}
