package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habitkit/internal/analytics"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/validation"
)

// HabitOverview is one dashboard row.
type HabitOverview struct {
	Habit         *model.Habit
	Today         model.LogStatus // "" when nothing is logged today
	CurrentStreak int
}

type HabitService struct {
	repo    repository.HabitRepository
	logRepo repository.HabitLogRepository
	now     func() time.Time
}

func NewHabitService(repo repository.HabitRepository, logRepo repository.HabitLogRepository) *HabitService {
	return &HabitService{
		repo:    repo,
		logRepo: logRepo,
		now:     time.Now,
	}
}

func (s *HabitService) Create(ctx context.Context, userID, name, description string) (*model.Habit, error) {
	req := validation.HabitRequest{Name: name, Description: description}
	err := validation.ValidateHabit(&req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	habit := &model.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	return s.repo.ByID(ctx, userID, habitID)
}

func (s *HabitService) Habits(ctx context.Context, userID, sortBy string, includeArchived bool) ([]*model.Habit, error) {
	return s.repo.Habits(ctx, userID, repository.HabitFilter{
		SortBy:          sortBy,
		IncludeArchived: includeArchived,
	})
}

func (s *HabitService) Update(ctx context.Context, userID, habitID, name, description string) (*model.Habit, error) {
	req := validation.HabitRequest{Name: name, Description: description}
	err := validation.ValidateHabit(&req)
	if err != nil {
		return nil, err
	}

	habit, err := s.repo.ByID(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Name = req.Name
	habit.Description = req.Description

	err = s.repo.Update(ctx, habit)
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// SetArchived hides a habit from the dashboard without touching its history.
func (s *HabitService) SetArchived(ctx context.Context, userID, habitID string, archived bool) (*model.Habit, error) {
	habit, err := s.repo.ByID(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if archived == habit.IsArchived() {
		return habit, nil
	}

	if archived {
		now := s.now()
		habit.ArchivedAt = &now
	} else {
		habit.ArchivedAt = nil
	}

	err = s.repo.Update(ctx, habit)
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// Today is the current UTC day as the service sees it.
func (s *HabitService) Today() model.Day {
	return model.Today(s.now())
}

// Delete removes the habit and, through the foreign key, all of its logs.
func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	return s.repo.Delete(ctx, userID, habitID)
}

// Overview lists active habits with today's status and current streak.
func (s *HabitService) Overview(ctx context.Context, userID string) ([]HabitOverview, error) {
	habits, err := s.repo.Habits(ctx, userID, repository.HabitFilter{SortBy: repository.HabitSortName})
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := model.Today(now)

	rows := make([]HabitOverview, 0, len(habits))
	for _, habit := range habits {
		logs, err := s.logRepo.Logs(ctx, habit.ID, today)
		if err != nil {
			return nil, fmt.Errorf("failed to load logs for habit %s: %w", habit.ID, err)
		}

		row := HabitOverview{
			Habit:         habit,
			CurrentStreak: analytics.CurrentStreak(logs, now),
		}
		if n := len(logs); n > 0 && logs[n-1].Date.Equal(today) {
			row.Today = logs[n-1].Status
		}
		rows = append(rows, row)
	}

	return rows, nil
}
