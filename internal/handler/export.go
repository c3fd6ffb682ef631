package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export sends every habit and log of the user as JSON. With object storage
// configured the file is archived there and the client is redirected to it.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	url, ok, err := h.exportService.Archive(r.Context(), user.ID)
	if err != nil {
		// fall back to a direct download
		slog.Error("failed to archive export", "error", err, "user_id", user.ID)
	} else if ok {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=habits-export.json")

	err = h.exportService.Write(r.Context(), user.ID, w)
	if err != nil {
		slog.Error("failed to export habits", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to export habits", http.StatusInternalServerError)
		return
	}
}
