package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/odam/tallybot/internal/adapter/http/dto"
	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	RecordAdjustment(ctx context.Context, input usecase.RecordAdjustmentInput) (*domain.Entry, error)
	UndoLast(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]*domain.Entry, error)
	EntriesForUser(ctx context.Context, userID int64, limit int) ([]*domain.Entry, error)
}

// LedgerHandler handles entry-related HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Record records a signed adjustment.
func (h *LedgerHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.RecordAdjustment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List lists recent entries, newest first. A user_id query restricts the
// listing to one user.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)

	var (
		entries []*domain.Entry
		err     error
	)
	if userID, ok := parseInt64Query(r, "user_id"); ok {
		entries, err = h.ledgerUC.EntriesForUser(r.Context(), userID, limit)
	} else {
		entries, err = h.ledgerUC.Recent(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Undo deletes the most recent entry.
func (h *LedgerHandler) Undo(w http.ResponseWriter, r *http.Request) {
	id, err := h.ledgerUC.UndoLast(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to undo last entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UndoResponse{DeletedID: id})
}
