package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

const (
	HabitSortRecent = "recent"
	HabitSortName   = "name"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

// HabitFilter narrows a habit listing.
type HabitFilter struct {
	SortBy          string
	IncludeArchived bool
}

type HabitRepository interface {
	Create(ctx context.Context, habit *model.Habit) error
	ByID(ctx context.Context, userID, habitID string) (*model.Habit, error)
	Habits(ctx context.Context, userID string, filter HabitFilter) ([]*model.Habit, error)
	Update(ctx context.Context, habit *model.Habit) error
	Delete(ctx context.Context, userID, habitID string) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *model.Habit) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO habits (id, user_id, name, description, archived_at, created_at, updated_at)
		VALUES (:id, :user_id, :name, :description, :archived_at, :created_at, :updated_at)
	`, habit)
	return err
}

// ByID only returns habits owned by userID; anything else is ErrHabitNotFound.
func (r *habitRepository) ByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	err := r.db.GetContext(ctx, habit, `SELECT * FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (r *habitRepository) Habits(ctx context.Context, userID string, filter HabitFilter) ([]*model.Habit, error) {
	query := `SELECT * FROM habits WHERE user_id = $1`
	if !filter.IncludeArchived {
		query += ` AND archived_at IS NULL`
	}

	switch filter.SortBy {
	case HabitSortName:
		query += ` ORDER BY LOWER(name) ASC`
	default:
		query += ` ORDER BY updated_at DESC`
	}

	habits := []*model.Habit{}
	err := r.db.SelectContext(ctx, &habits, query, userID)
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) Update(ctx context.Context, habit *model.Habit) error {
	habit.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE habits
		SET name = :name, description = :description, archived_at = :archived_at, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`, habit)
	if err != nil {
		return err
	}
	return expectRows(result)
}

func (r *habitRepository) Delete(ctx context.Context, userID, habitID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return err
	}
	return expectRows(result)
}

func expectRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHabitNotFound
	}
	return nil
}
