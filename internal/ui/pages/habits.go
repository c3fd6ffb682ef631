package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/habitkit/internal/analytics"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

func Habits(habits []*model.Habit, sortBy string, showArchived bool) templ.Component {
	return page("Habits", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<h1>Habits</h1>`)

		b.WriteString(`<section class="card"><h2>New habit</h2><form hx-post="/app/habits" hx-swap="none">`)
		b.WriteString(`<label for="name">Name</label><input id="name" name="name" required maxlength="100">`)
		b.WriteString(`<label for="description">Description (Markdown)</label><textarea id="description" name="description" maxlength="1000"></textarea>`)
		b.WriteString(`<button type="submit">Create</button></form></section>`)

		archived := ""
		if showArchived {
			archived = "&archived=1"
		}
		fmt.Fprintf(b, `<p>Sort: <a href="/app/habits?sort=%s%s">recent</a> · <a href="/app/habits?sort=%s%s">name</a> · `,
			repository.HabitSortRecent, archived, repository.HabitSortName, archived)
		if showArchived {
			fmt.Fprintf(b, `<a href="/app/habits?sort=%s">hide archived</a></p>`, esc(sortBy))
		} else {
			fmt.Fprintf(b, `<a href="/app/habits?sort=%s&archived=1">show archived</a></p>`, esc(sortBy))
		}

		if len(habits) == 0 {
			b.WriteString(`<p>No habits yet.</p>`)
			return
		}

		b.WriteString(`<ul class="habit-list">`)
		for _, h := range habits {
			fmt.Fprintf(b, `<li><a href="/app/habits/%s">%s</a>`, esc(h.ID), esc(h.Name))
			if h.IsArchived() {
				b.WriteString(` <small>(archived)</small>`)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	})
}

// HabitDetail shows one habit. descriptionHTML is already rendered and
// sanitized Markdown.
func HabitDetail(habit *model.Habit, descriptionHTML string, summary analytics.Summary, today model.Day, todayStatus model.LogStatus) templ.Component {
	return page(habit.Name, func(ctx context.Context, b *strings.Builder) {
		fmt.Fprintf(b, `<h1>%s</h1>`, esc(habit.Name))
		if habit.IsArchived() {
			b.WriteString(`<p><em>Archived</em></p>`)
		}
		if descriptionHTML != "" {
			fmt.Fprintf(b, `<section class="card markdown">%s</section>`, descriptionHTML)
		}

		if !habit.IsArchived() {
			b.WriteString(`<section class="card"><h2>Today</h2>`)
			logButtons(b, habit.ID, today, todayStatus)
			b.WriteString(`</section>`)
		}

		b.WriteString(`<section class="card"><h2>Last 30 days</h2>`)
		fmt.Fprintf(b, `<p>Completion rate: <strong>%.0f%%</strong></p>`, summary.CompletionRate*100)
		fmt.Fprintf(b, `<p>Current streak: <strong>%d</strong> · Longest streak: <strong>%d</strong></p>`, summary.CurrentStreak, summary.LongestStreak)
		fmt.Fprintf(b, `<p>Done %d · Skipped %d · Missed %d</p>`,
			summary.Counts[string(model.LogStatusDone)],
			summary.Counts[string(model.LogStatusSkip)],
			summary.Counts[string(model.LogStatusFail)])
		b.WriteString(`<div class="grid">`)
		for _, p := range summary.Series {
			class := "cell"
			if p.Done > 0 {
				class += " done"
			}
			fmt.Fprintf(b, `<div class="%s" title="%s"></div>`, class, esc(p.Date))
		}
		b.WriteString(`</div></section>`)

		fmt.Fprintf(b, `<section class="card"><h2>Edit</h2><form hx-put="/app/habits/%s" hx-swap="none">`, esc(habit.ID))
		fmt.Fprintf(b, `<label for="name">Name</label><input id="name" name="name" required maxlength="100" value="%s">`, esc(habit.Name))
		fmt.Fprintf(b, `<label for="description">Description (Markdown)</label><textarea id="description" name="description" maxlength="1000">%s</textarea>`, esc(habit.Description))
		b.WriteString(`<button type="submit">Save</button></form>`)

		archive := "true"
		label := "Archive"
		if habit.IsArchived() {
			archive, label = "false", "Unarchive"
		}
		fmt.Fprintf(b, `<button type="button" hx-post="/app/habits/%s/archive" hx-vals='{"archived": "%s"}' hx-swap="none">%s</button>`, esc(habit.ID), archive, label)
		fmt.Fprintf(b, `<button type="button" hx-delete="/app/habits/%s" hx-confirm="Delete this habit and all of its history?" hx-swap="none">Delete</button>`, esc(habit.ID))
		b.WriteString(`</section>`)
	})
}
