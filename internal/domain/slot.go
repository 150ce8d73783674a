package domain

import (
	"fmt"
	"time"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// SlotState is the lifecycle state of a slot.
type SlotState string

const (
	SlotFree    SlotState = "free"
	SlotBooked  SlotState = "booked"
	SlotBlocked SlotState = "blocked"
)

// Valid reports whether s is a known state.
func (s SlotState) Valid() bool {
	return s == SlotFree || s == SlotBooked || s == SlotBlocked
}

// Slot is a single dated reservation unit in the kitchen schedule.
// Booked slots carry the reserving actor, blocked slots are always occupied by the administrator.
type Slot struct {
	ID        string
	Date      types.Date
	StartTime types.TimeString
	EndTime   types.TimeString
	State     SlotState
	Occupant  Actor

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Slot) IsFree() bool    { return s.State == SlotFree }
func (s *Slot) IsBooked() bool  { return s.State == SlotBooked }
func (s *Slot) IsBlocked() bool { return s.State == SlotBlocked }

// Interval returns [start, end) in minutes of day.
func (s *Slot) Interval() (start, end int, err error) {
	if start, err = s.StartTime.Minutes(); err != nil {
		return 0, 0, err
	}
	if end, err = s.EndTime.Minutes(); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Book claims the slot for actor with a new end time.
func (s *Slot) Book(actor Actor, end types.TimeString) {
	s.State = SlotBooked
	s.Occupant = actor
	s.EndTime = end
}

// Block turns the slot into an administrative block with a new end time.
func (s *Slot) Block(end types.TimeString) {
	s.State = SlotBlocked
	s.Occupant = Admin()
	s.EndTime = end
}

// Validate checks the record invariants.
func (s *Slot) Validate() error {
	if err := s.Date.Validate(); err != nil {
		return fmt.Errorf("%w: date: %w", ErrInvalidInput, err)
	}
	start, end, err := s.Interval()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimeFormat, err)
	}
	if end <= start {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	switch s.State {
	case SlotFree:
		if !s.Occupant.IsZero() {
			return fmt.Errorf("%w: free slot has an occupant", ErrInvalidInput)
		}
	case SlotBooked:
		if s.Occupant.IsZero() {
			return fmt.Errorf("%w: booked slot has no occupant", ErrInvalidInput)
		}
	case SlotBlocked:
		if !s.Occupant.IsAdmin() {
			return fmt.Errorf("%w: blocked slot must be held by the administrator", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown state %q", ErrInvalidInput, s.State)
	}
	return nil
}

// SlotFilter narrows slot listings.
type SlotFilter struct {
	Date           *types.Date
	Occupant       *Actor
	ExcludeBlocked bool
}

// DayStats summarises one date of the schedule relative to now.
type DayStats struct {
	Date       types.Date
	Total      int
	Completed  int
	InProgress int
	Upcoming   int
	Free       int
	Booked     int
	Blocked    int
}
