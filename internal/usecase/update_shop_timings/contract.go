package update_shop_timings

import (
	"context"
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
}

// Invalidator кэш магазинов, который сбрасывается после коммита
type Invalidator interface {
	Invalidate(id string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock текущее время в зоне кухни
type Clock interface {
	Now() time.Time
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
