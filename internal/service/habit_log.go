package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/habitkit/internal/analytics"
	"github.com/templui/habitkit/internal/metrics"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/validation"
)

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 366
)

// LogInput is an unvalidated log submission.
type LogInput struct {
	Date   string
	Status string
	Note   string
}

// HabitLogService owns the create-or-update and delete rules for a habit's
// daily slot. Input is validated before ownership is checked or anything is
// written.
type HabitLogService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
	now       func() time.Time
}

func NewHabitLogService(habitRepo repository.HabitRepository, logRepo repository.HabitLogRepository) *HabitLogService {
	return &HabitLogService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		now:       time.Now,
	}
}

// Upsert sets the status of (habitID, UTC day of input.Date). Status defaults
// to done. A second call for the same day overwrites status and note.
func (s *HabitLogService) Upsert(ctx context.Context, userID, habitID string, input LogInput) (*model.HabitLog, error) {
	req := validation.LogRequest{Date: input.Date, Status: input.Status, Note: input.Note}
	err := validation.ValidateLog(&req)
	if err != nil {
		metrics.HabitLogValidationFailures.Inc()
		return nil, err
	}

	day, err := model.ParseDay(req.Date)
	if err != nil {
		return nil, validation.FieldError("date", "date must be a valid date")
	}

	status := model.LogStatus(req.Status)
	if status == "" {
		status = model.LogStatusDone
	}

	_, err = s.habitRepo.ByID(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	stored, err := s.logRepo.Upsert(ctx, &model.HabitLog{
		HabitID: habitID,
		Date:    day,
		Status:  status,
		Note:    req.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert habit log: %w", err)
	}

	metrics.RecordLogWrite("upsert", string(status))
	slog.Debug("habit log upserted", "habit_id", habitID, "date", day.String(), "status", status)
	return stored, nil
}

// Delete clears (habitID, UTC day of date). Clearing an empty slot is not an
// error and reports 0.
func (s *HabitLogService) Delete(ctx context.Context, userID, habitID, date string) (int64, error) {
	day, err := parseDayField("date", date)
	if err != nil {
		metrics.HabitLogValidationFailures.Inc()
		return 0, err
	}

	_, err = s.habitRepo.ByID(ctx, userID, habitID)
	if err != nil {
		return 0, err
	}

	deleted, err := s.logRepo.Delete(ctx, habitID, day)
	if err != nil {
		return 0, fmt.Errorf("failed to delete habit log: %w", err)
	}

	metrics.RecordLogWrite("delete", "none")
	slog.Debug("habit log deleted", "habit_id", habitID, "date", day.String(), "deleted", deleted)
	return deleted, nil
}

// Range returns logs in [from, to]. Empty bounds default to the 30 days
// ending today.
func (s *HabitLogService) Range(ctx context.Context, userID, habitID, from, to string) ([]*model.HabitLog, error) {
	today := model.Today(s.now())

	end := today
	if to != "" {
		d, err := parseDayField("to", to)
		if err != nil {
			return nil, err
		}
		end = d
	}

	start := end.AddDays(-(DefaultStatsDays - 1))
	if from != "" {
		d, err := parseDayField("from", from)
		if err != nil {
			return nil, err
		}
		start = d
	}

	if start.After(end) {
		return nil, validation.FieldError("from", "from must not be after to")
	}

	_, err := s.habitRepo.ByID(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	return s.logRepo.Range(ctx, habitID, start, end)
}

// Stats summarizes the last days days, today included.
func (s *HabitLogService) Stats(ctx context.Context, userID, habitID string, days int) (*model.Habit, analytics.Summary, error) {
	err := validation.ValidateStats(&validation.StatsRequest{Days: days})
	if err != nil {
		return nil, analytics.Summary{}, err
	}

	habit, err := s.habitRepo.ByID(ctx, userID, habitID)
	if err != nil {
		return nil, analytics.Summary{}, err
	}

	now := s.now()
	today := model.Today(now)

	logs, err := s.logRepo.Logs(ctx, habitID, today)
	if err != nil {
		return nil, analytics.Summary{}, fmt.Errorf("failed to load habit logs: %w", err)
	}

	from := today.AddDays(-(days - 1))
	return habit, analytics.Summarize(logs, from.Time(), today.Time(), now), nil
}

func parseDayField(field, value string) (model.Day, error) {
	if value == "" {
		return model.Day{}, validation.FieldError(field, field+" is required")
	}
	day, err := model.ParseDay(value)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDay) {
			return model.Day{}, validation.FieldError(field, field+" must be a valid date")
		}
		return model.Day{}, err
	}
	return day, nil
}
