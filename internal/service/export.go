package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/templui/habitkit/internal/metrics"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/storage"
)

// Export is the downloadable copy of a user's data.
type Export struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Habits      []ExportHabit `json:"habits"`
}

type ExportHabit struct {
	*model.Habit
	Logs []*model.HabitLog `json:"logs"`
}

type ExportService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
	storage   storage.Storage // nil when object storage is not configured
	now       func() time.Time
}

func NewExportService(habitRepo repository.HabitRepository, logRepo repository.HabitLogRepository, store storage.Storage) *ExportService {
	return &ExportService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		storage:   store,
		now:       time.Now,
	}
}

func (s *ExportService) Build(ctx context.Context, userID string) (*Export, error) {
	habits, err := s.habitRepo.Habits(ctx, userID, repository.HabitFilter{
		SortBy:          repository.HabitSortName,
		IncludeArchived: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	logs, err := s.logRepo.LogsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habit logs: %w", err)
	}

	byHabit := make(map[string][]*model.HabitLog, len(habits))
	for _, l := range logs {
		byHabit[l.HabitID] = append(byHabit[l.HabitID], l)
	}

	export := &Export{
		GeneratedAt: s.now().UTC(),
		Habits:      make([]ExportHabit, 0, len(habits)),
	}
	for _, h := range habits {
		habitLogs := byHabit[h.ID]
		if habitLogs == nil {
			habitLogs = []*model.HabitLog{}
		}
		export.Habits = append(export.Habits, ExportHabit{Habit: h, Logs: habitLogs})
	}

	return export, nil
}

// Write encodes the export for userID to w.
func (s *ExportService) Write(ctx context.Context, userID string, w io.Writer) error {
	err := s.encode(ctx, userID, w)
	if err != nil {
		return err
	}

	metrics.ExportsTotal.WithLabelValues("download").Inc()
	return nil
}

func (s *ExportService) encode(ctx context.Context, userID string, w io.Writer) error {
	export, err := s.Build(ctx, userID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(export)
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// Archive uploads the export to object storage and returns a presigned
// download URL. ok is false when storage is not configured.
func (s *ExportService) Archive(ctx context.Context, userID string) (url string, ok bool, err error) {
	if s.storage == nil {
		return "", false, nil
	}

	var buf bytes.Buffer
	err = s.encode(ctx, userID, &buf)
	if err != nil {
		return "", true, err
	}

	path := fmt.Sprintf("exports/%s/%s.json", userID, s.now().UTC().Format("20060102T150405Z"))
	err = s.storage.Save(ctx, path, "application/json", &buf)
	if err != nil {
		return "", true, err
	}

	url, err = s.storage.PresignedURL(ctx, path)
	if err != nil {
		return "", true, err
	}

	metrics.ExportsTotal.WithLabelValues("archive").Inc()
	return url, true, nil
}
