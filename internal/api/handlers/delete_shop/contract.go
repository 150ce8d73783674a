package delete_shop

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
)

type ShopService interface {
	GetShop(ctx context.Context, id string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
