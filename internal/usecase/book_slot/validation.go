package book_slot

import (
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// validateRequest проверяет запрос до обращения к хранилищу
func validateRequest(req *Request, maxBookingHours int) error {
	if req.SlotID == "" {
		return fmt.Errorf("%w: slotId is required", domain.ErrInvalidInput)
	}

	if req.Actor.IsZero() {
		return domain.ErrMissingActor
	}

	if req.MarkUnavailable && !req.Actor.IsAdmin() {
		return fmt.Errorf("%w: only the administrator can mark a slot unavailable", domain.ErrInvalidInput)
	}

	if req.DurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: durationHours must be at least %d", domain.ErrInvalidInput, domain.MinDurationHours)
	}

	if !req.Actor.IsAdmin() && maxBookingHours > 0 && req.DurationHours > maxBookingHours {
		return fmt.Errorf("%w: durationHours must not exceed %d", domain.ErrInvalidInput, maxBookingHours)
	}

	return nil
}
