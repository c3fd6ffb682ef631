package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

// HabitLogRepository is the only writer of habit_logs. Every write is keyed
// by (habit, UTC day) and relies on the uq_habit_logs_habit_date constraint.
type HabitLogRepository interface {
	// Upsert creates or overwrites the log for (log.HabitID, log.Date) and
	// returns the stored row.
	Upsert(ctx context.Context, log *model.HabitLog) (*model.HabitLog, error)
	// Delete removes the log for (habitID, day) and reports how many rows went.
	Delete(ctx context.Context, habitID string, day model.Day) (int64, error)
	// Range returns logs with from <= date <= to in ascending date order.
	Range(ctx context.Context, habitID string, from, to model.Day) ([]*model.HabitLog, error)
	// Logs returns every log for the habit up to and including day.
	Logs(ctx context.Context, habitID string, until model.Day) ([]*model.HabitLog, error)
	// LogsForUser returns all logs of all habits owned by userID.
	LogsForUser(ctx context.Context, userID string) ([]*model.HabitLog, error)
}

type habitLogRepository struct {
	db *sqlx.DB
}

func NewHabitLogRepository(db *sqlx.DB) HabitLogRepository {
	return &habitLogRepository{db: db}
}

// Upsert is one statement, so two writers on the same key serialize inside
// the database and the later one wins.
func (r *habitLogRepository) Upsert(ctx context.Context, log *model.HabitLog) (*model.HabitLog, error) {
	now := time.Now().UTC()
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	query := `
		INSERT INTO habit_logs (id, habit_id, log_date, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (habit_id, log_date) DO UPDATE
		SET status = excluded.status,
		    note = excluded.note,
		    updated_at = excluded.updated_at
		RETURNING *
	`

	stored := &model.HabitLog{}
	err := r.db.GetContext(ctx, stored, query,
		log.ID,
		log.HabitID,
		log.Date,
		string(log.Status),
		log.Note,
		now,
		now,
	)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *habitLogRepository) Delete(ctx context.Context, habitID string, day model.Day) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = $1 AND log_date = $2`, habitID, day)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *habitLogRepository) Range(ctx context.Context, habitID string, from, to model.Day) ([]*model.HabitLog, error) {
	logs := []*model.HabitLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM habit_logs
		WHERE habit_id = $1 AND log_date >= $2 AND log_date <= $3
		ORDER BY log_date ASC
	`, habitID, from, to)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *habitLogRepository) Logs(ctx context.Context, habitID string, until model.Day) ([]*model.HabitLog, error) {
	logs := []*model.HabitLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM habit_logs
		WHERE habit_id = $1 AND log_date <= $2
		ORDER BY log_date ASC
	`, habitID, until)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *habitLogRepository) LogsForUser(ctx context.Context, userID string) ([]*model.HabitLog, error) {
	logs := []*model.HabitLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT l.* FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = $1
		ORDER BY l.habit_id, l.log_date ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return logs, nil
}
