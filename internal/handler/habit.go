package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/markdown"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/ui"
	"github.com/templui/habitkit/internal/ui/pages"
	"github.com/templui/habitkit/internal/validation"
)

type HabitHandler struct {
	habitService *service.HabitService
	logService   *service.HabitLogService
	markdown     *markdown.Parser
}

func NewHabitHandler(habitService *service.HabitService, logService *service.HabitLogService, md *markdown.Parser) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		logService:   logService,
		markdown:     md,
	}
}

func (h *HabitHandler) HabitsPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if sortBy != repository.HabitSortName {
		sortBy = repository.HabitSortRecent
	}
	showArchived := r.URL.Query().Get("archived") == "1"

	habits, err := h.habitService.Habits(r.Context(), user.ID, sortBy, showArchived)
	if err != nil {
		slog.Error("failed to get habits", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load habits", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Habits(habits, sortBy, showArchived))
}

func (h *HabitHandler) HabitDetailPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	habit, summary, err := h.logService.Stats(r.Context(), user.ID, habitID, service.DefaultStatsDays)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			w.WriteHeader(http.StatusNotFound)
			ui.Render(w, r, pages.NotFound())
			return
		}
		slog.Error("failed to get habit stats", "error", err, "user_id", user.ID, "habit_id", habitID)
		http.Error(w, "Failed to load habit", http.StatusInternalServerError)
		return
	}

	today := h.habitService.Today()
	var todayStatus model.LogStatus
	logs, err := h.logService.Range(r.Context(), user.ID, habitID, today.String(), today.String())
	if err != nil {
		slog.Warn("failed to load today's log", "error", err, "habit_id", habitID)
	} else if len(logs) > 0 {
		todayStatus = logs[0].Status
	}

	description, err := h.markdown.Render(habit.Description)
	if err != nil {
		slog.Warn("failed to render habit description", "error", err, "habit_id", habitID)
		description = ""
	}

	ui.Render(w, r, pages.HabitDetail(habit, description, summary, today, todayStatus))
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habit, err := h.habitService.Create(r.Context(), user.ID, r.FormValue("name"), r.FormValue("description"))
	if err != nil {
		h.renderWriteError(w, r, err, "Failed to create habit")
		return
	}

	slog.Info("habit created", "user_id", user.ID, "habit_id", habit.ID)
	w.Header().Set("HX-Redirect", "/app/habits/"+habit.ID)
	w.WriteHeader(http.StatusOK)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	_, err := h.habitService.Update(r.Context(), user.ID, habitID, r.FormValue("name"), r.FormValue("description"))
	if err != nil {
		h.renderWriteError(w, r, err, "Failed to update habit")
		return
	}

	refreshHTMX(w, r)
	toastSuccess(w, r, "Habit updated")
}

func (h *HabitHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	archived, err := strconv.ParseBool(r.FormValue("archived"))
	if err != nil {
		archived = true
	}

	_, err = h.habitService.SetArchived(r.Context(), user.ID, habitID, archived)
	if err != nil {
		h.renderWriteError(w, r, err, "Failed to archive habit")
		return
	}

	refreshHTMX(w, r)
	if archived {
		toastSuccess(w, r, "Habit archived")
	} else {
		toastSuccess(w, r, "Habit restored")
	}
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	err := h.habitService.Delete(r.Context(), user.ID, habitID)
	if err != nil {
		h.renderWriteError(w, r, err, "Failed to delete habit")
		return
	}

	slog.Info("habit deleted", "user_id", user.ID, "habit_id", habitID)
	w.Header().Set("HX-Redirect", "/app/habits")
	w.WriteHeader(http.StatusOK)
}

// renderWriteError turns a service error into a toast. HTMX only swaps 2xx
// responses, so the status stays 200.
func (h *HabitHandler) renderWriteError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		toastError(w, r, verr.Error())
	case errors.Is(err, repository.ErrHabitNotFound):
		toastError(w, r, "Habit not found")
	default:
		slog.Error(fallback, "error", err, "user_id", ctxkeys.User(r.Context()).ID, "path", r.URL.Path)
		toastError(w, r, fallback)
	}
}
