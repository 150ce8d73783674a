package book_slot

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
	bookSlot "github.com/khan47650/central-kitchen/internal/usecase/book_slot"
)

type BookSlotUseCase interface {
	Execute(ctx context.Context, req *bookSlot.Request) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
