package handler

import (
	"context"
	"net/http"

	"github.com/odam/tallybot/internal/adapter/http/dto"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Build(ctx context.Context, recentLimit int) (string, error)
	Cached(ctx context.Context, recentLimit int) (string, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Get returns the rendered ledger report. The cached copy is served unless
// fresh=true forces a rebuild.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	recentLimit := parseIntQuery(r, "recent", 0)

	build := h.reportUC.Cached
	if r.URL.Query().Get("fresh") == "true" {
		build = h.reportUC.Build
	}

	text, err := build(r.Context(), recentLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportResponse{Report: text})
}
