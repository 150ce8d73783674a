package list_shops

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/service/shops/models"
)

type ShopService interface {
	ListShops(ctx context.Context) ([]models.ShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
