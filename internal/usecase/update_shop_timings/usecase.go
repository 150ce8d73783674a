package update_shop_timings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
	shopRepo "github.com/khan47650/central-kitchen/internal/infra/storage/shop"
)

const operationName = "update_shop_timings"

// UseCase use case для обновления расписания магазина с учетом блокировки редактирования
type UseCase struct {
	shopRepo  ShopRepository
	txManager TransactionManager
	clock     Clock
	editLock  time.Duration
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shopRepo ShopRepository,
	txManager TransactionManager,
	clock Clock,
	editLock time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		shopRepo:  shopRepo,
		txManager: txManager,
		clock:     clock,
		editLock:  editLock,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute сохраняет новое расписание. Строки, заблокированные на момент обновления, остаются прежними.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ShopView, error) {
	view, err := uc.execute(ctx, req)
	if err == nil {
		uc.metrics.RecordOperation(operationName, "ok")
	} else {
		uc.metrics.RecordOperation(operationName, domain.KindOf(err))
	}
	return view, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.ShopView, error) {
	uc.logger.Info("UpdateShopTimings: shop=%s, rows=%d, actor=%s", req.ShopID, len(req.Timings), req.Actor)

	// 1. Валидация входных данных
	if req.ShopID == "" {
		return nil, fmt.Errorf("%w: shopId is required", domain.ErrInvalidInput)
	}
	if req.Actor.IsZero() {
		return nil, domain.ErrMissingActor
	}
	incoming, err := domain.BuildTimetable(req.Timings)
	if err != nil {
		uc.logger.Warn("UpdateShopTimings: invalid timings for shop=%s: %v", req.ShopID, err)
		return nil, err
	}

	var (
		saved *domain.Shop
		now   time.Time
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем магазин с блокировкой строки
		shop, err := uc.shopRepo.GetByIDForUpdate(txCtx, req.ShopID)
		if err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				uc.logger.Warn("UpdateShopTimings: shop not found: id=%s", req.ShopID)
				return fmt.Errorf("%w: id=%s", domain.ErrShopNotFound, req.ShopID)
			}
			uc.logger.Error("UpdateShopTimings: failed to get shop=%s: %v", req.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %w", ErrInternal, err)
		}

		// 3. Проверяем права
		if !shop.OwnedBy(req.Actor) {
			uc.logger.Warn("UpdateShopTimings: actor=%s does not own shop=%s", req.Actor, shop.ID)
			return fmt.Errorf("%w: shop %s", domain.ErrForbidden, shop.ID)
		}

		// 4. Заблокированные строки берем из сохраненного расписания
		now = uc.clock.Now()
		shop.Timings = domain.MergeLocked(shop.Timings, incoming, now, uc.editLock)

		// 5. Профиль обновляется, только если поле передано
		if req.Name != nil {
			shop.Name = *req.Name
		}
		if req.Address != nil {
			shop.Address = *req.Address
		}
		if req.Description != nil {
			shop.Description = *req.Description
		}

		if err := uc.shopRepo.Update(txCtx, shop); err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				return fmt.Errorf("%w: id=%s", domain.ErrShopNotFound, req.ShopID)
			}
			uc.logger.Error("UpdateShopTimings: failed to update shop=%s: %v", shop.ID, err)
			return fmt.Errorf("%w: failed to update shop: %w", ErrInternal, err)
		}

		saved = shop
		return nil
	})
	// Читатель мог закэшировать старую версию до коммита
	uc.invalidate(req.ShopID)
	if err != nil {
		return nil, err
	}

	// 6. Статус и блокировки пересчитываются для ответа
	view := domain.ViewShop(saved, now, uc.editLock)
	uc.logger.Info("UpdateShopTimings: shop=%s saved, status=%s", saved.ID, view.Status)
	return &view, nil
}

func (uc *UseCase) invalidate(id string) {
	if cache, ok := uc.shopRepo.(Invalidator); ok {
		cache.Invalidate(id)
	}
}
