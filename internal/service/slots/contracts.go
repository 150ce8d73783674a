package slots

import (
	"context"
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	ListByDate(ctx context.Context, date types.Date) ([]*domain.Slot, error)
	Delete(ctx context.Context, id string) error
}

// Clock текущее время в зоне кухни
type Clock interface {
	Now() time.Time
	Today() types.Date
	Instant(d types.Date, t types.TimeString) (time.Time, error)
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
