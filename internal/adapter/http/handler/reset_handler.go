package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odam/tallybot/internal/adapter/http/dto"
)

// ResetService defines the behavior needed by ResetHandler.
type ResetService interface {
	RequestReset(ctx context.Context) (string, error)
	ConfirmReset(ctx context.Context, token string) error
	CancelReset(ctx context.Context, token string) error
}

// ResetHandler handles the two-phase ledger reset.
type ResetHandler struct {
	ledgerUC ResetService
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(ledgerUC ResetService) *ResetHandler {
	return &ResetHandler{ledgerUC: ledgerUC}
}

// Request starts a reset and returns the confirmation token. The ledger is
// untouched until that token is confirmed.
func (h *ResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	token, err := h.ledgerUC.RequestReset(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to request reset", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.ResetRequestedResponse{Token: token})
}

// Confirm consumes the token and clears the ledger.
func (h *ResetHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing reset token", "")
		return
	}

	if err := h.ledgerUC.ConfirmReset(r.Context(), token); err != nil {
		writeError(w, mapDomainError(err), "failed to confirm reset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Cancel discards a pending reset token.
func (h *ResetHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing reset token", "")
		return
	}

	if err := h.ledgerUC.CancelReset(r.Context(), token); err != nil {
		writeError(w, mapDomainError(err), "failed to cancel reset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
