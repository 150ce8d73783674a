package create_slot

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
	createSlot "github.com/khan47650/central-kitchen/internal/usecase/create_slot"
)

type CreateSlotUseCase interface {
	Execute(ctx context.Context, req *createSlot.Request) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
