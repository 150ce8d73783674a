package create_slot

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockDate(ctx context.Context, date types.Date) error
	ListByDate(ctx context.Context, date types.Date) ([]*domain.Slot, error)
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учет результатов операций
type Metrics interface {
	RecordOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) RecordOperation(string, string) {}
