package notifier

import (
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// Типы событий
const (
	EventSlotBooked  = "slot_booked"
	EventSlotBlocked = "slot_blocked"
)

// Event событие подтверждения бронирования
type Event struct {
	Type       string
	SlotID     string
	Date       string
	StartTime  string
	EndTime    string
	BookedBy   string
	OccurredAt time.Time
}

// NewEvent строит событие по слоту после успешного бронирования
func NewEvent(slot *domain.Slot, at time.Time) Event {
	eventType := EventSlotBooked
	if slot.IsBlocked() {
		eventType = EventSlotBlocked
	}
	return Event{
		Type:       eventType,
		SlotID:     slot.ID,
		Date:       slot.Date.String(),
		StartTime:  slot.StartTime.String(),
		EndTime:    slot.EndTime.String(),
		BookedBy:   slot.Occupant.String(),
		OccurredAt: at,
	}
}

func (e Event) values() map[string]interface{} {
	return map[string]interface{}{
		"type":        e.Type,
		"slot_id":     e.SlotID,
		"date":        e.Date,
		"start_time":  e.StartTime,
		"end_time":    e.EndTime,
		"booked_by":   e.BookedBy,
		"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339),
	}
}
