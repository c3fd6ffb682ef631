package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/testutil"
)

func seedHabit(t *testing.T, database *sqlx.DB) (*model.User, *model.Habit) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	user := &model.User{ID: uuid.New().String(), Email: uuid.New().String() + "@example.com", CreatedAt: now}
	if err := repository.NewUserRepository(database).Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	habit := &model.Habit{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      "Read",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repository.NewHabitRepository(database).Create(ctx, habit); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	return user, habit
}

func countLogs(t *testing.T, database *sqlx.DB, habitID string) int {
	t.Helper()
	var n int
	if err := database.Get(&n, `SELECT COUNT(*) FROM habit_logs WHERE habit_id = $1`, habitID); err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return n
}

func mustDay(t *testing.T, s string) model.Day {
	t.Helper()
	d, err := model.ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func TestHabitLogUpsertSameStatusTwice(t *testing.T) {
	database := testutil.NewDB(t)
	_, habit := seedHabit(t, database)
	repo := repository.NewHabitLogRepository(database)
	ctx := context.Background()
	day := mustDay(t, "2025-01-08")

	first, err := repo.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: day, Status: model.LogStatusDone})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: day, Status: model.LogStatusDone})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if got := countLogs(t, database, habit.ID); got != 1 {
		t.Fatalf("expected 1 log, got %d", got)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same row, got ids %s and %s", first.ID, second.ID)
	}
	if second.Status != model.LogStatusDone {
		t.Errorf("expected status done, got %s", second.Status)
	}
	if second.Date.String() != "2025-01-08" {
		t.Errorf("expected date 2025-01-08, got %s", second.Date)
	}
}

func TestHabitLogUpsertOverwrites(t *testing.T) {
	database := testutil.NewDB(t)
	_, habit := seedHabit(t, database)
	repo := repository.NewHabitLogRepository(database)
	ctx := context.Background()
	day := mustDay(t, "2025-01-08")

	_, err := repo.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: day, Status: model.LogStatusDone, Note: "morning"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	stored, err := repo.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: day, Status: model.LogStatusFail})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if got := countLogs(t, database, habit.ID); got != 1 {
		t.Fatalf("expected 1 log, got %d", got)
	}
	if stored.Status != model.LogStatusFail {
		t.Errorf("expected status fail, got %s", stored.Status)
	}
	if stored.Note != "" {
		t.Errorf("expected note to be replaced with empty, got %q", stored.Note)
	}
}

func TestHabitLogUpsertConcurrentSameKey(t *testing.T) {
	database := testutil.NewDB(t)
	_, habit := seedHabit(t, database)
	repo := repository.NewHabitLogRepository(database)
	day := mustDay(t, "2025-03-01")

	statuses := []model.LogStatus{model.LogStatusDone, model.LogStatusFail, model.LogStatusSkip, model.LogStatusDone}

	var wg sync.WaitGroup
	errs := make(chan error, len(statuses))
	for _, status := range statuses {
		wg.Add(1)
		go func(status model.LogStatus) {
			defer wg.Done()
			_, err := repo.Upsert(context.Background(), &model.HabitLog{HabitID: habit.ID, Date: day, Status: status})
			errs <- err
		}(status)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert failed: %v", err)
		}
	}

	if got := countLogs(t, database, habit.ID); got != 1 {
		t.Fatalf("expected exactly 1 log after concurrent upserts, got %d", got)
	}

	logs, err := repo.Range(context.Background(), habit.ID, day, day)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if !logs[0].Status.Valid() {
		t.Errorf("stored status %q is not one of the requested statuses", logs[0].Status)
	}
}

func TestHabitLogDelete(t *testing.T) {
	database := testutil.NewDB(t)
	_, habit := seedHabit(t, database)
	repo := repository.NewHabitLogRepository(database)
	ctx := context.Background()
	day := mustDay(t, "2025-01-08")

	deleted, err := repo.Delete(ctx, habit.ID, day)
	if err != nil {
		t.Fatalf("delete on absent log: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", deleted)
	}

	if _, err := repo.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: day, Status: model.LogStatusSkip}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err = repo.Delete(ctx, habit.ID, day)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
	if got := countLogs(t, database, habit.ID); got != 0 {
		t.Errorf("expected no logs left, got %d", got)
	}
}

func TestHabitLogRangeAndLogs(t *testing.T) {
	database := testutil.NewDB(t)
	user, habit := seedHabit(t, database)
	repo := repository.NewHabitLogRepository(database)
	ctx := context.Background()

	for _, d := range []string{"2025-09-03", "2025-09-01", "2025-09-05", "2025-08-31"} {
		if _, err := repo.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: mustDay(t, d), Status: model.LogStatusDone}); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	logs, err := repo.Range(ctx, habit.ID, mustDay(t, "2025-09-01"), mustDay(t, "2025-09-03"))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	got := []string{}
	for _, l := range logs {
		got = append(got, l.Date.String())
	}
	want := []string{"2025-09-01", "2025-09-03"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Range() = %v, want %v", got, want)
	}

	until, err := repo.Logs(ctx, habit.ID, mustDay(t, "2025-09-03"))
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if len(until) != 3 {
		t.Errorf("expected 3 logs up to 2025-09-03, got %d", len(until))
	}

	all, err := repo.LogsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("logs for user: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 logs for user, got %d", len(all))
	}
}

func TestHabitDeleteCascadesLogs(t *testing.T) {
	database := testutil.NewDB(t)
	user, habit := seedHabit(t, database)
	logs := repository.NewHabitLogRepository(database)
	habits := repository.NewHabitRepository(database)
	ctx := context.Background()

	if _, err := logs.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: mustDay(t, "2025-01-01"), Status: model.LogStatusDone}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := habits.Delete(ctx, user.ID, habit.ID); err != nil {
		t.Fatalf("delete habit: %v", err)
	}
	if got := countLogs(t, database, habit.ID); got != 0 {
		t.Errorf("expected logs to be removed with the habit, got %d", got)
	}
}
