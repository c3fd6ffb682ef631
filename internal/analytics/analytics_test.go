package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/templui/habitkit/internal/model"
)

func day(t *testing.T, s string) model.Day {
	t.Helper()
	d, err := model.ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func logAt(t *testing.T, date string, status model.LogStatus) *model.HabitLog {
	t.Helper()
	return &model.HabitLog{HabitID: "h1", Date: day(t, date), Status: status}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.LogStatus
		want     float64
	}{
		{"empty", nil, 0},
		{"done fail done", []model.LogStatus{"done", "fail", "done"}, 2.0 / 3.0},
		{"all done", []model.LogStatus{"done", "done"}, 1},
		{"none done", []model.LogStatus{"skip", "fail"}, 0},
		{"unknown status counts as not done", []model.LogStatus{"done", "maybe"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := make([]*model.HabitLog, 0, len(tt.statuses))
			for i, s := range tt.statuses {
				logs = append(logs, logAt(t, "2025-01-01", s))
				logs[i].Date = logs[i].Date.AddDays(i)
			}

			got := CompletionRate(logs)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CompletionRate() = %v, want %v", got, tt.want)
			}
			if math.IsNaN(got) {
				t.Error("CompletionRate() returned NaN")
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2025, 9, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		logs func(t *testing.T) []*model.HabitLog
		want int
	}{
		{
			name: "empty",
			logs: func(t *testing.T) []*model.HabitLog { return nil },
			want: 0,
		},
		{
			name: "break after yesterday",
			logs: func(t *testing.T) []*model.HabitLog {
				return []*model.HabitLog{
					logAt(t, "2025-09-10", model.LogStatusDone),
					logAt(t, "2025-09-09", model.LogStatusDone),
					logAt(t, "2025-09-07", model.LogStatusFail),
				}
			},
			want: 2,
		},
		{
			name: "today failed",
			logs: func(t *testing.T) []*model.HabitLog {
				return []*model.HabitLog{
					logAt(t, "2025-09-10", model.LogStatusFail),
					logAt(t, "2025-09-09", model.LogStatusDone),
					logAt(t, "2025-09-08", model.LogStatusDone),
				}
			},
			want: 0,
		},
		{
			name: "today absent",
			logs: func(t *testing.T) []*model.HabitLog {
				return []*model.HabitLog{
					logAt(t, "2025-09-09", model.LogStatusDone),
					logAt(t, "2025-09-08", model.LogStatusDone),
				}
			},
			want: 0,
		},
		{
			name: "skip breaks the streak",
			logs: func(t *testing.T) []*model.HabitLog {
				return []*model.HabitLog{
					logAt(t, "2025-09-10", model.LogStatusDone),
					logAt(t, "2025-09-09", model.LogStatusSkip),
					logAt(t, "2025-09-08", model.LogStatusDone),
				}
			},
			want: 1,
		},
		{
			name: "duplicate day last write wins",
			logs: func(t *testing.T) []*model.HabitLog {
				return []*model.HabitLog{
					logAt(t, "2025-09-10", model.LogStatusFail),
					logAt(t, "2025-09-10", model.LogStatusDone),
					logAt(t, "2025-09-09", model.LogStatusDone),
				}
			},
			want: 2,
		},
		{
			name: "across month boundary",
			logs: func(t *testing.T) []*model.HabitLog {
				var logs []*model.HabitLog
				for d := day(t, "2025-08-28"); !d.After(day(t, "2025-09-10")); d = d.AddDays(1) {
					logs = append(logs, &model.HabitLog{Date: d, Status: model.LogStatusDone})
				}
				return logs
			},
			want: 14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.logs(t), today); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreakTodayIsUTCDay(t *testing.T) {
	logs := []*model.HabitLog{logAt(t, "2025-01-09", model.LogStatusDone)}

	// 23:30 in New York on the 8th is already the 9th in UTC.
	ny := time.FixedZone("EST", -5*60*60)
	today := time.Date(2025, 1, 8, 23, 30, 0, 0, ny)

	if got := CurrentStreak(logs, today); got != 1 {
		t.Errorf("CurrentStreak() = %d, want 1", got)
	}
}

func TestLongestStreak(t *testing.T) {
	logs := []*model.HabitLog{
		logAt(t, "2025-01-01", model.LogStatusDone),
		logAt(t, "2025-01-02", model.LogStatusDone),
		logAt(t, "2025-01-03", model.LogStatusDone),
		logAt(t, "2025-01-04", model.LogStatusFail),
		logAt(t, "2025-01-05", model.LogStatusDone),
		logAt(t, "2025-01-07", model.LogStatusDone),
		logAt(t, "2025-01-08", model.LogStatusDone),
	}

	if got := LongestStreak(logs); got != 3 {
		t.Errorf("LongestStreak() = %d, want 3", got)
	}
	if got := LongestStreak(nil); got != 0 {
		t.Errorf("LongestStreak(nil) = %d, want 0", got)
	}
}

func TestBuildSeries(t *testing.T) {
	logs := []*model.HabitLog{
		logAt(t, "2025-09-01", model.LogStatusDone),
		logAt(t, "2025-09-02", model.LogStatusFail),
	}
	from := day(t, "2025-09-01").Time()
	to := day(t, "2025-09-03").Time()

	got := BuildSeries(from, to, logs)
	want := []Point{
		{Date: "2025-09-01", Done: 1},
		{Date: "2025-09-02", Done: 0},
		{Date: "2025-09-03", Done: 0},
	}

	if len(got) != len(want) {
		t.Fatalf("BuildSeries() returned %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildSeriesLength(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{"single day", "2025-09-01", "2025-09-01", 1},
		{"leap february", "2024-02-01", "2024-03-01", 30},
		{"full year", "2025-01-01", "2025-12-31", 365},
		{"inverted", "2025-09-03", "2025-09-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSeries(day(t, tt.from).Time(), day(t, tt.to).Time(), nil)
			if len(got) != tt.want {
				t.Fatalf("len(BuildSeries()) = %d, want %d", len(got), tt.want)
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].Date >= got[i].Date {
					t.Fatalf("series not strictly ascending at %d: %s then %s", i, got[i-1].Date, got[i].Date)
				}
			}
		})
	}
}

func TestBuildSeriesIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 9, 1, 22, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 2, 1, 0, 0, 0, time.UTC)

	got := BuildSeries(from, to, []*model.HabitLog{logAt(t, "2025-09-02", model.LogStatusDone)})
	if len(got) != 2 || got[1].Done != 1 {
		t.Errorf("BuildSeries() = %+v, want two days with the second done", got)
	}
}

func TestSummarize(t *testing.T) {
	logs := []*model.HabitLog{
		logAt(t, "2025-08-20", model.LogStatusDone),
		logAt(t, "2025-09-08", model.LogStatusSkip),
		logAt(t, "2025-09-09", model.LogStatusDone),
		logAt(t, "2025-09-10", model.LogStatusDone),
	}
	today := day(t, "2025-09-10").Time()
	from := day(t, "2025-09-04").Time()

	s := Summarize(logs, from, today, today)

	if s.From != "2025-09-04" || s.To != "2025-09-10" {
		t.Errorf("range = %s..%s", s.From, s.To)
	}
	if len(s.Series) != 7 {
		t.Errorf("series length = %d, want 7", len(s.Series))
	}
	if math.Abs(s.CompletionRate-2.0/3.0) > 1e-9 {
		t.Errorf("completion rate = %v, want 2/3", s.CompletionRate)
	}
	if s.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", s.CurrentStreak)
	}
	if s.LongestStreak != 2 {
		t.Errorf("longest streak = %d, want 2", s.LongestStreak)
	}
	if s.Counts["done"] != 2 || s.Counts["skip"] != 1 || s.Counts["fail"] != 0 {
		t.Errorf("counts = %v", s.Counts)
	}
}
