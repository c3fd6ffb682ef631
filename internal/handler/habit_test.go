package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/templui/habitkit/internal/handler"
	"github.com/templui/habitkit/internal/markdown"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/testutil"
)

type pageFixture struct {
	habits    *service.HabitService
	logs      *service.HabitLogService
	handler   *handler.HabitHandler
	dashboard *handler.DashboardHandler
	export    *handler.ExportHandler
}

func newPageFixture(t *testing.T) (*pageFixture, *http.ServeMux, func(user string) string) {
	t.Helper()
	database := testutil.NewDB(t)
	habitRepo := repository.NewHabitRepository(database)
	logRepo := repository.NewHabitLogRepository(database)

	f := &pageFixture{
		habits: service.NewHabitService(habitRepo, logRepo),
		logs:   service.NewHabitLogService(habitRepo, logRepo),
	}
	f.handler = handler.NewHabitHandler(f.habits, f.logs, markdown.NewParser())
	f.dashboard = handler.NewDashboardHandler(f.habits)
	f.export = handler.NewExportHandler(service.NewExportService(habitRepo, logRepo, nil))

	me := newUser(t, database)
	other := newUser(t, database)
	users := map[string]string{"me": me.ID, "other": other.ID}

	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			user := me
			if r.PathValue("user") == "other" {
				user = other
			}
			withUser(user, h)(w, r)
		})
	}
	route("GET /u/{user}/dashboard", f.dashboard.DashboardPage)
	route("GET /u/{user}/habits", f.handler.HabitsPage)
	route("GET /u/{user}/habits/export", f.export.Export)
	route("GET /u/{user}/habits/{id}", f.handler.HabitDetailPage)
	route("POST /u/{user}/habits", f.handler.Create)
	route("PUT /u/{user}/habits/{id}", f.handler.Update)
	route("POST /u/{user}/habits/{id}/archive", f.handler.Archive)
	route("DELETE /u/{user}/habits/{id}", f.handler.Delete)

	return f, mux, func(user string) string { return users[user] }
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHabitLifecycle(t *testing.T) {
	f, mux, userID := newPageFixture(t)

	rec := serve(mux, formRequest(http.MethodPost, "/u/me/habits", url.Values{"name": {"Stretch"}, "description": {"Ten **minutes**"}}))
	redirect := rec.Header().Get("HX-Redirect")
	if !strings.HasPrefix(redirect, "/app/habits/") {
		t.Fatalf("expected HX-Redirect to the new habit, got %q (body %s)", redirect, rec.Body.String())
	}
	habitID := strings.TrimPrefix(redirect, "/app/habits/")

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/u/me/habits/"+habitID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<strong>minutes</strong>") {
		t.Error("expected the description rendered as Markdown")
	}

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/u/other/habits/"+habitID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("another user's habit: expected 404, got %d", rec.Code)
	}

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/u/me/dashboard", nil))
	if !strings.Contains(rec.Body.String(), "Stretch") {
		t.Error("expected the habit on the dashboard")
	}

	rec = serve(mux, formRequest(http.MethodPost, "/u/me/habits/"+habitID+"/archive", url.Values{"archived": {"true"}}))
	if rec.Header().Get("HX-Refresh") != "true" {
		t.Errorf("archive: expected HX-Refresh, body %s", rec.Body.String())
	}
	rows, err := f.habits.Overview(context.Background(), userID("me"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("archived habit should leave the dashboard, got %d rows", len(rows))
	}

	rec = serve(mux, formRequest(http.MethodDelete, "/u/me/habits/"+habitID, url.Values{}))
	if rec.Header().Get("HX-Redirect") != "/app/habits" {
		t.Errorf("delete: expected HX-Redirect to the list, got %q", rec.Header().Get("HX-Redirect"))
	}
	if _, err := f.habits.ByID(context.Background(), userID("me"), habitID); err == nil {
		t.Error("habit should be gone after delete")
	}
}

func TestCreateHabitValidation(t *testing.T) {
	f, mux, userID := newPageFixture(t)

	rec := serve(mux, formRequest(http.MethodPost, "/u/me/habits", url.Values{"name": {"   "}}))
	if rec.Header().Get("HX-Redirect") != "" {
		t.Fatal("invalid habit must not redirect")
	}
	if !strings.Contains(rec.Body.String(), "toast-error") {
		t.Errorf("expected an error toast, got %s", rec.Body.String())
	}

	habits, err := f.habits.Habits(context.Background(), userID("me"), repository.HabitSortRecent, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Errorf("expected no habits, got %d", len(habits))
	}
}

func TestExportDownload(t *testing.T) {
	f, mux, userID := newPageFixture(t)

	habit, err := f.habits.Create(context.Background(), userID("me"), "Journal", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.logs.Upsert(context.Background(), userID("me"), habit.ID, service.LogInput{Date: "2025-05-05"}); err != nil {
		t.Fatal(err)
	}

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/u/me/habits/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment") {
		t.Errorf("expected an attachment, got %q", rec.Header().Get("Content-Disposition"))
	}

	var export service.Export
	if err := json.Unmarshal(rec.Body.Bytes(), &export); err != nil {
		t.Fatalf("invalid export: %v", err)
	}
	if len(export.Habits) != 1 || len(export.Habits[0].Logs) != 1 {
		t.Fatalf("unexpected export %+v", export)
	}
	if export.Habits[0].Logs[0].Date.String() != "2025-05-05" {
		t.Errorf("unexpected log date %s", export.Habits[0].Logs[0].Date)
	}
}
