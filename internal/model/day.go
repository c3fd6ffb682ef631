package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical calendar-day form used in storage and on the wire.
const DayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid date")

// dayInputLayouts are the timestamp forms accepted from clients, tried in order.
var dayInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DayLayout,
}

// Day is a calendar day pinned to UTC midnight.
// The zero Day is not a valid calendar day.
type Day struct {
	t time.Time
}

// NewDay returns the UTC calendar day of the instant t.
// Only the UTC year, month and day survive; the offset is applied first.
func NewDay(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the UTC calendar day of now.
func Today(now time.Time) Day {
	return NewDay(now)
}

// ParseDay parses any supported timestamp and normalizes it to its UTC day.
// Inputs without an offset are read as UTC.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, ErrInvalidDay
	}

	for _, layout := range dayInputLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewDay(t), nil
		}
	}

	return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DayLayout)
}

// AddDays moves n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) Before(o Day) bool {
	return d.t.Before(o.t)
}

func (d Day) After(o Day) bool {
	return d.t.After(o.t)
}

func (d Day) Equal(o Day) bool {
	return d.t.Equal(o.t)
}

// DaysUntil counts whole days from d to o; negative when o is earlier.
func (d Day) DaysUntil(o Day) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// Value stores the day as YYYY-MM-DD text so both SQLite and Postgres compare
// and constrain on the same key.
func (d Day) Value() (driver.Value, error) {
	if d.t.IsZero() {
		return nil, ErrInvalidDay
	}
	return d.String(), nil
}

func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = NewDay(v)
		return nil
	case nil:
		*d = Day{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
}

func (d *Day) scanString(s string) error {
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = Day{}
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
