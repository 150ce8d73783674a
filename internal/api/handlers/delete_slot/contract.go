package delete_slot

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
)

type SlotService interface {
	GetSlot(ctx context.Context, id string) (*domain.Slot, error)
	DeleteSlot(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
