package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/ui"
	"github.com/templui/habitkit/internal/ui/pages"
)

type DashboardHandler struct {
	habitService *service.HabitService
}

func NewDashboardHandler(habitService *service.HabitService) *DashboardHandler {
	return &DashboardHandler{
		habitService: habitService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	rows, err := h.habitService.Overview(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to get habit overview", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Dashboard(rows, h.habitService.Today()))
}
