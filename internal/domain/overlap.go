package domain

import (
	"fmt"
	"sort"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// FindConflict returns the earliest slot on date whose interval intersects [start, end),
// skipping excludeID. Slots with unreadable times are treated as conflicting.
func FindConflict(slots []*Slot, date types.Date, start, end types.TimeString, excludeID string) (*Slot, error) {
	candStart, err := start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %w", ErrInvalidTimeFormat, err)
	}
	candEnd, err := end.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %w", ErrInvalidTimeFormat, err)
	}

	sameDay := make([]*Slot, 0, len(slots))
	for _, s := range slots {
		if s.Date == date && s.ID != excludeID {
			sameDay = append(sameDay, s)
		}
	}
	sort.SliceStable(sameDay, func(i, j int) bool {
		return sameDay[i].StartTime.IsBefore(sameDay[j].StartTime)
	})

	for _, s := range sameDay {
		existStart, existEnd, err := s.Interval()
		if err != nil {
			return s, nil
		}
		if Overlaps(candStart, candEnd, existStart, existEnd) {
			return s, nil
		}
	}
	return nil, nil
}

// EndTime computes start + durationHours on the same day.
func EndTime(start types.TimeString, durationHours int) (types.TimeString, error) {
	if durationHours < MinDurationHours {
		return "", fmt.Errorf("%w: durationHours must be positive", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTimeFormat, err)
	}
	end, err := start.AddHours(durationHours)
	if err != nil {
		return "", fmt.Errorf("%w: slot may not cross midnight", ErrInvalidInput)
	}
	return end, nil
}
