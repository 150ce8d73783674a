package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
	slotRepo "github.com/khan47650/central-kitchen/internal/infra/storage/slot"
)

const (
	operationName = "book_slot"
	notifyTimeout = 5 * time.Second
)

// UseCase use case для бронирования или блокировки существующего слота
type UseCase struct {
	slotRepo        SlotRepository
	txManager       TransactionManager
	clock           Clock
	notifier        Notifier
	metrics         Metrics
	logger          Logger
	maxBookingHours int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	clock Clock,
	notifier Notifier,
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
		clock:           clock,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
		maxBookingHours: maxBookingHours,
	}
}

// Execute бронирует слот для клиента или блокирует его от имени администратора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	slot, err := uc.execute(ctx, req)
	uc.metrics.RecordOperation(operationName, resultLabel(err))
	if err == nil {
		uc.notify(ctx, slot)
	}
	return slot, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	uc.logger.Info("BookSlot: slot=%s, duration=%dh, markUnavailable=%t, actor=%s",
		req.SlotID, req.DurationHours, req.MarkUnavailable, req.Actor)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxBookingHours); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Slot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Находим слот, чтобы узнать его дату
		slot, err := uc.getSlot(txCtx, req.SlotID)
		if err != nil {
			return err
		}

		// 3. Блокируем дату и перечитываем слот под блокировкой
		if err := uc.slotRepo.LockDate(txCtx, slot.Date); err != nil {
			uc.logger.Error("BookSlot: failed to lock date=%s: %v", slot.Date, err)
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}
		if slot, err = uc.getSlot(txCtx, req.SlotID); err != nil {
			return err
		}

		// 4. Проверяем состояние слота
		if err := uc.checkState(slot, req); err != nil {
			return err
		}

		// 5. Начало слота не должно быть в прошлом (по исходному времени начала)
		start, err := uc.clock.Instant(slot.Date, slot.StartTime)
		if err != nil {
			uc.logger.Error("BookSlot: stored slot=%s has unreadable start: %v", slot.ID, err)
			return fmt.Errorf("%w: %w", domain.ErrInvalidTimeFormat, err)
		}
		if start.Before(uc.clock.Now()) {
			uc.logger.Warn("BookSlot: slot=%s starts in the past (%s %s)", slot.ID, slot.Date, slot.StartTime)
			return fmt.Errorf("%w: %s %s", domain.ErrPastSlot, slot.Date, slot.StartTime)
		}

		// 6. Новое время окончания
		endTime, err := domain.EndTime(slot.StartTime, req.DurationHours)
		if err != nil {
			uc.logger.Warn("BookSlot: invalid duration for slot=%s: %v", slot.ID, err)
			return err
		}

		// 7. Повторная проверка пересечений без учета самого слота
		slots, err := uc.slotRepo.ListByDate(txCtx, slot.Date)
		if err != nil {
			uc.logger.Error("BookSlot: failed to list slots for date=%s: %v", slot.Date, err)
			return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
		}
		conflict, err := domain.FindConflict(slots, slot.Date, slot.StartTime, endTime, slot.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			uc.logger.Warn("BookSlot: %s-%s overlaps slot id=%s", slot.StartTime, endTime, conflict.ID)
			return uc.conflictError(req, conflict)
		}

		// 8. Бронируем или блокируем
		if req.MarkUnavailable {
			slot.Block(endTime)
		} else {
			slot.Book(req.Actor, endTime)
		}

		updated, err := uc.slotRepo.Update(txCtx, slot)
		if err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotOverlap):
				uc.logger.Warn("BookSlot: storage rejected overlapping slot: %v", err)
				return uc.conflictError(req, nil)
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return fmt.Errorf("%w: id=%s", domain.ErrSlotNotFound, req.SlotID)
			}
			uc.logger.Error("BookSlot: failed to update slot=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: slot id=%s is now %s by %s (%s %s-%s)",
		result.ID, result.State, result.Occupant, result.Date, result.StartTime, result.EndTime)
	return result, nil
}

func (uc *UseCase) getSlot(ctx context.Context, id string) (*domain.Slot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("BookSlot: slot not found: id=%s", id)
			return nil, fmt.Errorf("%w: id=%s", domain.ErrSlotNotFound, id)
		}
		uc.logger.Error("BookSlot: failed to get slot=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
	}
	return slot, nil
}

func (uc *UseCase) checkState(slot *domain.Slot, req *Request) error {
	if req.MarkUnavailable && slot.IsBooked() {
		uc.logger.Warn("BookSlot: slot=%s is booked by %s, refusing to block", slot.ID, slot.Occupant)
		return fmt.Errorf("%w: slot %s is booked by %s", domain.ErrDeleteExistingFirst, slot.ID, slot.Occupant)
	}
	if slot.IsBlocked() && !req.adminOverride() {
		uc.logger.Warn("BookSlot: slot=%s is unavailable", slot.ID)
		return fmt.Errorf("%w: id=%s", domain.ErrSlotUnavailable, slot.ID)
	}
	if slot.IsBooked() {
		uc.logger.Warn("BookSlot: slot=%s is already booked", slot.ID)
		return fmt.Errorf("%w: id=%s", domain.ErrAlreadyBooked, slot.ID)
	}
	return nil
}

func (uc *UseCase) conflictError(req *Request, conflict *domain.Slot) error {
	target := domain.ErrOverlapsExisting
	if req.adminOverride() {
		target = domain.ErrDeleteExistingFirst
	}
	if conflict == nil {
		return target
	}
	return fmt.Errorf("%w: %s-%s", target, conflict.StartTime, conflict.EndTime)
}

// notify публикует подтверждение в фоне, ошибки только логируются
func (uc *UseCase) notify(ctx context.Context, slot *domain.Slot) {
	if uc.notifier == nil {
		return
	}
	snapshot := *slot
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := uc.notifier.NotifyBooked(notifyCtx, &snapshot); err != nil {
			uc.logger.Warn("BookSlot: failed to notify about slot=%s: %v", snapshot.ID, err)
		}
	}()
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err)
}
