package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/service"
)

const maxLogBodyBytes = 16 << 10

type HabitLogHandler struct {
	logService *service.HabitLogService
}

func NewHabitLogHandler(logService *service.HabitLogService) *HabitLogHandler {
	return &HabitLogHandler{
		logService: logService,
	}
}

type logRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

type logResponse struct {
	ID      string          `json:"id"`
	HabitID string          `json:"habitId"`
	Date    string          `json:"date"`
	Status  model.LogStatus `json:"status"`
	Note    string          `json:"note"`
}

type deleteLogResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deletedCount"`
}

var errUnsupportedContentType = errors.New("unsupported content type")

// Upsert creates or overwrites the log for one habit and day.
func (h *HabitLogHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habitID, ok := habitIDParam(w, r)
	if !ok {
		return
	}

	input, err := decodeLogRequest(w, r)
	if err != nil {
		if errors.Is(err, errUnsupportedContentType) {
			respondError(w, http.StatusUnsupportedMediaType, "content type must be application/json or a form")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log, err := h.logService.Upsert(r.Context(), user.ID, habitID, service.LogInput{
		Date:   input.Date,
		Status: input.Status,
		Note:   input.Note,
	})
	if err != nil {
		respondServiceError(w, r, err, "failed to upsert habit log", "user_id", user.ID, "habit_id", habitID)
		return
	}

	refreshHTMX(w, r)
	respondJSON(w, http.StatusOK, logResponse{
		ID:      log.ID,
		HabitID: log.HabitID,
		Date:    log.Date.String(),
		Status:  log.Status,
		Note:    log.Note,
	})
}

// Delete clears the log for one habit and day. Clearing an empty day reports
// deletedCount 0.
func (h *HabitLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habitID, ok := habitIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.logService.Delete(r.Context(), user.ID, habitID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, r, err, "failed to delete habit log", "user_id", user.ID, "habit_id", habitID)
		return
	}

	refreshHTMX(w, r)
	respondJSON(w, http.StatusOK, deleteLogResponse{Success: true, DeletedCount: deleted})
}

// Range lists logs between the from and to query days.
func (h *HabitLogHandler) Range(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habitID, ok := habitIDParam(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	logs, err := h.logService.Range(r.Context(), user.ID, habitID, q.Get("from"), q.Get("to"))
	if err != nil {
		respondServiceError(w, r, err, "failed to list habit logs", "user_id", user.ID, "habit_id", habitID)
		return
	}

	out := make([]logResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, logResponse{
			ID:      l.ID,
			HabitID: l.HabitID,
			Date:    l.Date.String(),
			Status:  l.Status,
			Note:    l.Note,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"logs": out})
}

// Stats returns the analytics summary for the last ?days=N days.
func (h *HabitLogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habitID, ok := habitIDParam(w, r)
	if !ok {
		return
	}

	days := service.DefaultStatsDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "days must be a number",
				Fields: map[string]string{"days": "days must be a number"},
			})
			return
		}
		days = n
	}

	habit, summary, err := h.logService.Stats(r.Context(), user.ID, habitID, days)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute habit stats", "user_id", user.ID, "habit_id", habitID)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"habitId": habit.ID,
		"name":    habit.Name,
		"stats":   summary,
	})
}

// habitIDParam rejects malformed ids before any database work.
func habitIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	parsed, err := uuid.Parse(id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid habit id")
		return "", false
	}
	return parsed.String(), true
}

// decodeLogRequest reads a JSON body or form fields.
func decodeLogRequest(w http.ResponseWriter, r *http.Request) (logRequest, error) {
	var req logRequest

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return req, errUnsupportedContentType
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogBodyBytes)

	switch mediaType {
	case "application/json":
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			return req, err
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxLogBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return req, err
		}
		req.Date = r.PostFormValue("date")
		req.Status = r.PostFormValue("status")
		req.Note = r.PostFormValue("note")
	default:
		return req, errUnsupportedContentType
	}

	return req, nil
}
