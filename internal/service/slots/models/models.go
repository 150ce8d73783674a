package models

import (
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	State     string `json:"state"`

	// Флаги в формате клиентского приложения
	Booked      bool    `json:"booked"`
	Unavailable bool    `json:"unavailable"`
	BookedBy    *string `json:"bookedBy"` // ID клиента, "Admin" или null

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DayStatsResponse сводка по дню
type DayStatsResponse struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	Upcoming   int    `json:"upcoming"`
	Free       int    `json:"free"`
	Booked     int    `json:"booked"`
	Blocked    int    `json:"blocked"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:          s.ID,
		Date:        s.Date.String(),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		State:       string(s.State),
		Booked:      s.IsBooked(),
		Unavailable: s.IsBlocked(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if !s.Occupant.IsZero() {
		bookedBy := s.Occupant.String()
		resp.BookedBy = &bookedBy
	}
	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) []SlotResponse {
	resp := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		if r := FromDomainSlot(s); r != nil {
			resp = append(resp, *r)
		}
	}
	return resp
}

// FromDomainDayStats конвертирует сводку дня в DTO
func FromDomainDayStats(s domain.DayStats) *DayStatsResponse {
	return &DayStatsResponse{
		Date:       s.Date.String(),
		Total:      s.Total,
		Completed:  s.Completed,
		InProgress: s.InProgress,
		Upcoming:   s.Upcoming,
		Free:       s.Free,
		Booked:     s.Booked,
		Blocked:    s.Blocked,
	}
}
