package book_slot

import (
	"github.com/khan47650/central-kitchen/internal/domain"
	bookSlot "github.com/khan47650/central-kitchen/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	DurationHours   int  `json:"durationHours"`
	MakeUnavailable bool `json:"makeUnavailable"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(slotID string, actor domain.Actor) *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:          slotID,
		DurationHours:   r.DurationHours,
		MarkUnavailable: r.MakeUnavailable,
		Actor:           actor,
	}
}
