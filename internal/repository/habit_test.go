package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/testutil"
)

func TestHabitOwnership(t *testing.T) {
	database := testutil.NewDB(t)
	owner, habit := seedHabit(t, database)
	other, _ := seedHabit(t, database)
	repo := repository.NewHabitRepository(database)
	ctx := context.Background()

	got, err := repo.ByID(ctx, owner.ID, habit.ID)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if got.Name != habit.Name {
		t.Errorf("expected name %q, got %q", habit.Name, got.Name)
	}

	_, err = repo.ByID(ctx, other.ID, habit.ID)
	if !errors.Is(err, repository.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound for another user, got %v", err)
	}

	err = repo.Delete(ctx, other.ID, habit.ID)
	if !errors.Is(err, repository.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound deleting another user's habit, got %v", err)
	}
}

func TestHabitListFilters(t *testing.T) {
	database := testutil.NewDB(t)
	user, first := seedHabit(t, database)
	repo := repository.NewHabitRepository(database)
	ctx := context.Background()

	now := time.Now()
	second := &model.Habit{ID: uuid.New().String(), UserID: user.ID, Name: "aerobics", CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	byName, err := repo.Habits(ctx, user.ID, repository.HabitFilter{SortBy: repository.HabitSortName})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byName) != 2 || byName[0].Name != "aerobics" {
		t.Fatalf("expected aerobics first by name, got %+v", byName)
	}

	archivedAt := time.Now()
	first.ArchivedAt = &archivedAt
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("archive: %v", err)
	}

	active, err := repo.Habits(ctx, user.ID, repository.HabitFilter{})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Errorf("expected only the unarchived habit, got %d habits", len(active))
	}

	all, err := repo.Habits(ctx, user.ID, repository.HabitFilter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 habits including archived, got %d", len(all))
	}
}
