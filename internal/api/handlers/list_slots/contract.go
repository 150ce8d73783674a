package list_slots

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/service/slots/models"
)

type SlotService interface {
	ListSlots(ctx context.Context) ([]models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
