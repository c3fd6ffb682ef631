package model

import (
	"time"
)

type Habit struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	ArchivedAt  *time.Time `db:"archived_at" json:"archivedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}
