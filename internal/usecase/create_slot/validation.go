package create_slot

import (
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// validateRequest валидирует запрос и возвращает время окончания слота
func validateRequest(req *Request, maxBookingHours int) (types.TimeString, error) {
	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if err := req.Date.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidTimeFormat, err)
	}
	if req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", domain.ErrInvalidInput)
	}

	// Блокировать интервалы может только администратор
	if req.MarkUnavailable && !req.Actor.IsAdmin() {
		return "", fmt.Errorf("%w: only the administrator can mark a slot unavailable", domain.ErrInvalidInput)
	}

	// Ограничение длительности действует только на клиентские слоты
	if !req.Actor.IsAdmin() && maxBookingHours > 0 && req.DurationHours > maxBookingHours {
		return "", fmt.Errorf("%w: durationHours must be at most %d", domain.ErrInvalidInput, maxBookingHours)
	}

	return domain.EndTime(req.StartTime, req.DurationHours)
}
