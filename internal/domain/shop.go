package domain

import (
	"fmt"
	"time"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// Weekday is a short weekday label as used in timing tables.
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// Weekdays lists the labels in display order.
var Weekdays = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// WeekdayOf maps a time.Weekday to its label.
func WeekdayOf(d time.Weekday) Weekday {
	// time.Sunday == 0
	return Weekdays[(int(d)+6)%7]
}

// ParseWeekday validates a label.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown day %q", ErrInvalidRow, s)
}

// ShopStatus is the live status derived from a timing table.
type ShopStatus string

const (
	StatusOpen  ShopStatus = "open"
	StatusBreak ShopStatus = "break"
	StatusClose ShopStatus = "close"
)

// TimingRow is one weekday of a shop's timing table.
type TimingRow struct {
	Day        Weekday
	Open       bool
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	Break      bool
	BreakStart types.TimeString
	BreakEnd   types.TimeString
}

// ClosedRow returns the default row for day.
func ClosedRow(day Weekday) TimingRow {
	return TimingRow{Day: day}
}

// Validate enforces well-formed pairs and ordered windows.
func (r TimingRow) Validate() error {
	if _, err := ParseWeekday(string(r.Day)); err != nil {
		return err
	}

	if r.Open || !r.OpenTime.IsZero() || !r.CloseTime.IsZero() {
		if err := validateWindow(r.Day, "open", r.OpenTime, r.CloseTime, r.Open); err != nil {
			return err
		}
	}
	if r.Break || !r.BreakStart.IsZero() || !r.BreakEnd.IsZero() {
		if err := validateWindow(r.Day, "break", r.BreakStart, r.BreakEnd, r.Break); err != nil {
			return err
		}
	}
	return nil
}

func validateWindow(day Weekday, name string, from, to types.TimeString, required bool) error {
	if from.IsZero() && to.IsZero() && !required {
		return nil
	}
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: %s %s window needs both times", ErrInvalidRow, day, name)
	}
	start, err := from.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s %s start: %w", ErrInvalidRow, day, name, err)
	}
	end, err := to.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s %s end: %w", ErrInvalidRow, day, name, err)
	}
	if start >= end {
		return fmt.Errorf("%w: %s %s window must start before it ends", ErrInvalidRow, day, name)
	}
	return nil
}

// Timetable is a shop's weekly timing table keyed by weekday.
type Timetable map[Weekday]TimingRow

// NewTimetable returns seven closed rows.
func NewTimetable() Timetable {
	t := make(Timetable, len(Weekdays))
	for _, d := range Weekdays {
		t[d] = ClosedRow(d)
	}
	return t
}

// BuildTimetable validates rows and fills missing days with closed rows.
func BuildTimetable(rows []TimingRow) (Timetable, error) {
	t := NewTimetable()
	seen := make(map[Weekday]bool, len(rows))
	for _, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if seen[r.Day] {
			return nil, fmt.Errorf("%w: duplicate day %s", ErrInvalidRow, r.Day)
		}
		seen[r.Day] = true
		t[r.Day] = r
	}
	return t, nil
}

// Rows returns the table in display order.
func (t Timetable) Rows() []TimingRow {
	rows := make([]TimingRow, 0, len(Weekdays))
	for _, d := range Weekdays {
		row, ok := t[d]
		if !ok {
			row = ClosedRow(d)
		}
		rows = append(rows, row)
	}
	return rows
}

// Validate checks every row.
func (t Timetable) Validate() error {
	for day, r := range t {
		if r.Day != day {
			return fmt.Errorf("%w: row %s stored under %s", ErrInvalidRow, r.Day, day)
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Shop owns a timing table.
type Shop struct {
	ID          string
	OwnerID     string
	Name        string
	Address     string
	Description string
	Timings     Timetable

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether actor may manage the shop.
func (s *Shop) OwnedBy(actor Actor) bool {
	return actor.IsAdmin() || (actor.IsClient() && actor.ClientID() == s.OwnerID)
}
