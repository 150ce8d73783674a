package create_shop

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/service/shops/models"
)

type ShopService interface {
	CreateShop(ctx context.Context, req *models.CreateShopRequest) (*models.ShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
