package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/service"
)

func Dashboard(rows []service.HabitOverview, today model.Day) templ.Component {
	return page("Today", func(ctx context.Context, b *strings.Builder) {
		fmt.Fprintf(b, `<h1>Today</h1><p>%s</p>`, esc(today.Time().Format("Monday, January 2, 2006")))

		if len(rows) == 0 {
			b.WriteString(`<section class="card"><p>No habits yet.</p><a href="/app/habits">Create your first habit</a></section>`)
			return
		}

		for _, row := range rows {
			fmt.Fprintf(b, `<section class="card" id="habit-%s"><h2><a href="/app/habits/%s">%s</a></h2>`,
				esc(row.Habit.ID), esc(row.Habit.ID), esc(row.Habit.Name))
			fmt.Fprintf(b, `<p>Current streak: <strong>%d</strong> %s</p>`, row.CurrentStreak, plural(row.CurrentStreak, "day", "days"))
			if row.Today != "" {
				fmt.Fprintf(b, `<p class="status-%s">Today: %s</p>`, esc(string(row.Today)), esc(string(row.Today)))
			}
			logButtons(b, row.Habit.ID, today, row.Today)
			b.WriteString(`</section>`)
		}
	})
}

// logButtons posts to the log endpoint; the server answers HTMX writes with
// HX-Refresh so the page picks up the new state.
func logButtons(b *strings.Builder, habitID string, day model.Day, current model.LogStatus) {
	b.WriteString(`<div class="log-actions">`)
	for _, status := range model.LogStatuses {
		pressed := "false"
		if status == current {
			pressed = "true"
		}
		fmt.Fprintf(b, `<button type="button" aria-pressed="%s" hx-post="/app/habits/%s/logs" hx-vals='{"date": "%s", "status": "%s"}' hx-swap="none">%s</button>`,
			pressed, esc(habitID), day.String(), status, statusLabel(status))
	}
	if current != "" {
		fmt.Fprintf(b, `<button type="button" hx-delete="/app/habits/%s/logs?date=%s" hx-swap="none">Clear</button>`, esc(habitID), day.String())
	}
	b.WriteString(`</div>`)
}

func statusLabel(s model.LogStatus) string {
	switch s {
	case model.LogStatusDone:
		return "Done"
	case model.LogStatusSkip:
		return "Skip"
	case model.LogStatusFail:
		return "Missed"
	}
	return string(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
