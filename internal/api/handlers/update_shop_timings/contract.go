package update_shop_timings

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
	updateTimings "github.com/khan47650/central-kitchen/internal/usecase/update_shop_timings"
)

type UpdateShopTimingsUseCase interface {
	Execute(ctx context.Context, req *updateTimings.Request) (*domain.ShopView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
