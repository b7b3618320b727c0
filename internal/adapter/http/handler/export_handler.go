package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/export"
)

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	Export(ctx context.Context) ([]*domain.Entry, error)
}

// ExportHandler streams the full ledger as CSV.
type ExportHandler struct {
	ledgerUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(ledgerUC ExportService) *ExportHandler {
	return &ExportHandler{ledgerUC: ledgerUC}
}

// Download writes the ledger as a CSV attachment.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerUC.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export entries", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)

	// Status is already written; a serialization failure here can only
	// truncate the body.
	_ = export.WriteCSV(w, entries)
}
