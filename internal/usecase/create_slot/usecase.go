package create_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
	slotRepo "github.com/khan47650/central-kitchen/internal/infra/storage/slot"
)

const operationName = "create_slot"

// UseCase use case для создания слота
type UseCase struct {
	slotRepo        SlotRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	maxBookingHours int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	maxBookingHours int,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		slotRepo:        slotRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		maxBookingHours: maxBookingHours,
	}
}

// Execute создает свободный слот или административную блокировку.
// Проверка пересечений и запись выполняются под блокировкой даты в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	slot, err := uc.execute(ctx, req)
	uc.metrics.RecordOperation(operationName, resultLabel(err))
	return slot, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	uc.logger.Info("CreateSlot: date=%s, start=%s, duration=%dh, markUnavailable=%t, actor=%s",
		req.Date, req.StartTime, req.DurationHours, req.MarkUnavailable, req.Actor)

	// 1. Валидация входных данных
	endTime, err := validateRequest(req, uc.maxBookingHours)
	if err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Slot

	// 2. Проверка и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем дату, чтобы параллельные запросы не прошли проверку одновременно
		if err := uc.slotRepo.LockDate(txCtx, req.Date); err != nil {
			uc.logger.Error("CreateSlot: failed to lock date=%s: %v", req.Date, err)
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		// 2.2. Получаем слоты даты
		slots, err := uc.slotRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateSlot: failed to list slots for date=%s: %v", req.Date, err)
			return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
		}

		// 2.3. Проверяем пересечения
		conflict, err := domain.FindConflict(slots, req.Date, req.StartTime, endTime, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			if conflict.IsBlocked() {
				uc.logger.Warn("CreateSlot: %s-%s overlaps unavailable slot id=%s", req.StartTime, endTime, conflict.ID)
				return fmt.Errorf("%w: %s-%s", domain.ErrOverlapsUnavailable, conflict.StartTime, conflict.EndTime)
			}
			uc.logger.Warn("CreateSlot: %s-%s overlaps slot id=%s", req.StartTime, endTime, conflict.ID)
			return fmt.Errorf("%w: %s-%s", domain.ErrOverlapsExisting, conflict.StartTime, conflict.EndTime)
		}

		// 2.4. Создаем слот
		slot := &domain.Slot{
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   endTime,
			State:     domain.SlotFree,
		}
		if req.MarkUnavailable {
			slot.Block(endTime)
		}

		created, err := uc.slotRepo.Create(txCtx, slot)
		if err != nil {
			// Ограничение хранилища срабатывает, если проверка выше была обойдена
			if errors.Is(err, slotRepo.ErrSlotOverlap) {
				uc.logger.Warn("CreateSlot: storage rejected overlapping slot: %v", err)
				return fmt.Errorf("%w: %w", domain.ErrOverlapsExisting, err)
			}
			uc.logger.Error("CreateSlot: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSlot: created slot id=%s (%s %s-%s, %s)",
		result.ID, result.Date, result.StartTime, result.EndTime, result.State)
	return result, nil
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err)
}
