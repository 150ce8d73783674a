package shops

import (
	"context"
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shop, error)
	List(ctx context.Context) ([]*domain.Shop, error)
	Delete(ctx context.Context, id string) error
}

// Invalidator кэш магазинов, который сбрасывается после записи
type Invalidator interface {
	Invalidate(id string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock текущее время в зоне кухни
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
