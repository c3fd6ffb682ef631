package model

import (
	"time"
)

type LogStatus string

const (
	LogStatusDone LogStatus = "done"
	LogStatusSkip LogStatus = "skip"
	LogStatusFail LogStatus = "fail"
)

// LogStatuses is the closed set of statuses a log may carry.
var LogStatuses = []LogStatus{LogStatusDone, LogStatusSkip, LogStatusFail}

func (s LogStatus) Valid() bool {
	switch s {
	case LogStatusDone, LogStatusSkip, LogStatusFail:
		return true
	}
	return false
}

// HabitLog is one habit's status on one UTC calendar day.
// (HabitID, Date) is unique.
type HabitLog struct {
	ID        string    `db:"id" json:"id"`
	HabitID   string    `db:"habit_id" json:"habitId"`
	Date      Day       `db:"log_date" json:"date"`
	Status    LogStatus `db:"status" json:"status"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

func (l *HabitLog) IsDone() bool {
	return l.Status == LogStatusDone
}
