package validation

import (
	"strings"
)

// LogRequest is the body of a log upsert, from JSON or a form.
type LogRequest struct {
	Date   string `json:"date" validate:"required,day"`
	Status string `json:"status" validate:"omitempty,oneof=done skip fail"`
	Note   string `json:"note" validate:"max=200"`
}

// HabitRequest is the body of a habit create or update.
type HabitRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// StatsRequest is the query of the stats endpoint.
type StatsRequest struct {
	Days int `json:"days" validate:"min=1,max=366"`
}

func ValidateLog(req *LogRequest) error {
	req.Date = strings.TrimSpace(req.Date)
	req.Status = strings.TrimSpace(req.Status)
	return Struct(req)
}

func ValidateHabit(req *HabitRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	return Struct(req)
}

func ValidateStats(req *StatsRequest) error {
	return Struct(req)
}
