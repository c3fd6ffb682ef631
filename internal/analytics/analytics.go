// Package analytics computes completion rates, streaks and daily series from
// already-fetched habit logs. Every function is pure; callers supply "today".
package analytics

import (
	"time"

	"github.com/templui/habitkit/internal/model"
)

// Point is one calendar day of a series.
type Point struct {
	Date string `json:"date"`
	Done int    `json:"done"`
}

// Summary bundles the figures shown on a habit page and the stats endpoint.
type Summary struct {
	From           string         `json:"from"`
	To             string         `json:"to"`
	CompletionRate float64        `json:"completionRate"`
	CurrentStreak  int            `json:"currentStreak"`
	LongestStreak  int            `json:"longestStreak"`
	Counts         map[string]int `json:"counts"`
	Series         []Point        `json:"series"`
}

// CompletionRate is done / total over logs, or 0 for an empty set.
func CompletionRate(logs []*model.HabitLog) float64 {
	if len(logs) == 0 {
		return 0
	}

	done := 0
	for _, l := range logs {
		if l.IsDone() {
			done++
		}
	}
	return float64(done) / float64(len(logs))
}

// CurrentStreak counts consecutive done days walking back from today's UTC
// day. A missing or non-done day ends the walk, including today itself.
func CurrentStreak(logs []*model.HabitLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	byDay := index(logs)
	streak := 0
	for day := model.NewDay(today); byDay[day.String()] == model.LogStatusDone; day = day.AddDays(-1) {
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive done days anywhere in logs.
func LongestStreak(logs []*model.HabitLog) int {
	byDay := index(logs)

	longest := 0
	for key, status := range byDay {
		if status != model.LogStatusDone {
			continue
		}
		day, err := model.ParseDay(key)
		if err != nil {
			continue
		}
		// only start counting at the first day of a run
		if byDay[day.AddDays(-1).String()] == model.LogStatusDone {
			continue
		}

		run := 0
		for d := day; byDay[d.String()] == model.LogStatusDone; d = d.AddDays(1) {
			run++
		}
		longest = max(longest, run)
	}
	return longest
}

// BuildSeries returns one point per UTC day in [from, to], ascending. Days
// without a done log get 0. An inverted range yields an empty series.
func BuildSeries(from, to time.Time, logs []*model.HabitLog) []Point {
	start, end := model.NewDay(from), model.NewDay(to)
	if start.After(end) {
		return []Point{}
	}

	byDay := index(logs)
	series := make([]Point, 0, start.DaysUntil(end)+1)
	for day := start; !day.After(end); day = day.AddDays(1) {
		key := day.String()
		p := Point{Date: key}
		if byDay[key] == model.LogStatusDone {
			p.Done = 1
		}
		series = append(series, p)
	}
	return series
}

// Summarize computes the window figures over logs dated within [from, to]
// and the streaks over every log passed in.
func Summarize(logs []*model.HabitLog, from, to, today time.Time) Summary {
	start, end := model.NewDay(from), model.NewDay(to)

	window := make([]*model.HabitLog, 0, len(logs))
	for _, l := range logs {
		if l.Date.Before(start) || l.Date.After(end) {
			continue
		}
		window = append(window, l)
	}

	counts := make(map[string]int, len(model.LogStatuses))
	for _, s := range model.LogStatuses {
		counts[string(s)] = 0
	}
	for _, s := range index(window) {
		counts[string(s)]++
	}

	return Summary{
		From:           start.String(),
		To:             end.String(),
		CompletionRate: CompletionRate(window),
		CurrentStreak:  CurrentStreak(logs, today),
		LongestStreak:  LongestStreak(logs),
		Counts:         counts,
		Series:         BuildSeries(from, to, window),
	}
}

// index keys statuses by canonical day; later entries overwrite earlier ones.
func index(logs []*model.HabitLog) map[string]model.LogStatus {
	byDay := make(map[string]model.LogStatus, len(logs))
	for _, l := range logs {
		if l == nil || l.Date.IsZero() {
			continue
		}
		byDay[model.NewDay(l.Date.Time()).String()] = l.Status
	}
	return byDay
}
