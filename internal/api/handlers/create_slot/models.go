package create_slot

import (
	"github.com/khan47650/central-kitchen/internal/domain"
	createSlot "github.com/khan47650/central-kitchen/internal/usecase/create_slot"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	Date            string `json:"date"`      // "2025-06-10"
	StartTime       string `json:"startTime"` // "09:00"
	DurationHours   int    `json:"durationHours"`
	MakeUnavailable bool   `json:"makeUnavailable"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case. Формат проверяет use case.
func (r *CreateSlotRequest) ToUseCaseRequest(actor domain.Actor) *createSlot.Request {
	return &createSlot.Request{
		Date:            types.Date(r.Date),
		StartTime:       types.TimeString(r.StartTime),
		DurationHours:   r.DurationHours,
		MarkUnavailable: r.MakeUnavailable,
		Actor:           actor,
	}
}
