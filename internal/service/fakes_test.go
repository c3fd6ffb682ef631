package service

import (
	"context"
	"sort"
	"sync"

	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

type fakeHabitRepo struct {
	mu     sync.Mutex
	habits map[string]*model.Habit
	calls  int
}

func newFakeHabitRepo(habits ...*model.Habit) *fakeHabitRepo {
	r := &fakeHabitRepo{habits: map[string]*model.Habit{}}
	for _, h := range habits {
		r.habits[h.ID] = h
	}
	return r
}

func (r *fakeHabitRepo) Create(ctx context.Context, habit *model.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.habits[habit.ID] = habit
	return nil
}

func (r *fakeHabitRepo) ByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	h, ok := r.habits[habitID]
	if !ok || h.UserID != userID {
		return nil, repository.ErrHabitNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHabitRepo) Habits(ctx context.Context, userID string, filter repository.HabitFilter) ([]*model.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := []*model.Habit{}
	for _, h := range r.habits {
		if h.UserID != userID || (h.IsArchived() && !filter.IncludeArchived) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeHabitRepo) Update(ctx context.Context, habit *model.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	h, ok := r.habits[habit.ID]
	if !ok || h.UserID != habit.UserID {
		return repository.ErrHabitNotFound
	}
	cp := *habit
	r.habits[habit.ID] = &cp
	return nil
}

func (r *fakeHabitRepo) Delete(ctx context.Context, userID, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	h, ok := r.habits[habitID]
	if !ok || h.UserID != userID {
		return repository.ErrHabitNotFound
	}
	delete(r.habits, habitID)
	return nil
}

// fakeLogRepo keys logs by habit and day string, the same key the schema
// constrains on.
type fakeLogRepo struct {
	mu     sync.Mutex
	logs   map[string]map[string]*model.HabitLog
	writes int
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: map[string]map[string]*model.HabitLog{}}
}

func (r *fakeLogRepo) Upsert(ctx context.Context, log *model.HabitLog) (*model.HabitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.logs[log.HabitID] == nil {
		r.logs[log.HabitID] = map[string]*model.HabitLog{}
	}
	key := log.Date.String()
	if existing, ok := r.logs[log.HabitID][key]; ok {
		existing.Status = log.Status
		existing.Note = log.Note
		cp := *existing
		return &cp, nil
	}
	stored := *log
	if stored.ID == "" {
		stored.ID = log.HabitID + "-" + key
	}
	r.logs[log.HabitID][key] = &stored
	cp := stored
	return &cp, nil
}

func (r *fakeLogRepo) Delete(ctx context.Context, habitID string, day model.Day) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.logs[habitID][day.String()]; !ok {
		return 0, nil
	}
	delete(r.logs[habitID], day.String())
	return 1, nil
}

func (r *fakeLogRepo) Range(ctx context.Context, habitID string, from, to model.Day) ([]*model.HabitLog, error) {
	return r.filter(habitID, func(d model.Day) bool { return !d.Before(from) && !d.After(to) }), nil
}

func (r *fakeLogRepo) Logs(ctx context.Context, habitID string, until model.Day) ([]*model.HabitLog, error) {
	return r.filter(habitID, func(d model.Day) bool { return !d.After(until) }), nil
}

func (r *fakeLogRepo) LogsForUser(ctx context.Context, userID string) ([]*model.HabitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.HabitLog{}
	for _, byDay := range r.logs {
		for _, l := range byDay {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) filter(habitID string, keep func(model.Day) bool) []*model.HabitLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.HabitLog{}
	for _, l := range r.logs[habitID] {
		if keep(l.Date) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *fakeLogRepo) count(habitID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs[habitID])
}
