package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
	slotRepo "github.com/khan47650/central-kitchen/internal/infra/storage/slot"
	"github.com/khan47650/central-kitchen/internal/service/slots/models"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// Service сервис чтения и удаления слотов
type Service struct {
	slotRepo SlotRepository
	clock    Clock
	metrics  Metrics
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, clock Clock, metrics Metrics, logger Logger) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		slotRepo: slotRepo,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListSlots возвращает все слоты по дате и времени начала
func (s *Service) ListSlots(ctx context.Context) ([]models.SlotResponse, error) {
	slots, err := s.slotRepo.List(ctx, domain.SlotFilter{})
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListSlots: fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// ListFutureSlots возвращает слоты, которые начинаются позже текущего момента.
// Административные блокировки не включаются.
func (s *Service) ListFutureSlots(ctx context.Context) ([]models.SlotResponse, error) {
	slots, err := s.slotRepo.List(ctx, domain.SlotFilter{ExcludeBlocked: true})
	if err != nil {
		s.logger.Error("ListFutureSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFutureSlots - repository error: %w", ErrInternal, err)
	}

	now := s.clock.Now()
	future := make([]*domain.Slot, 0, len(slots))
	for _, slot := range slots {
		start, err := s.clock.Instant(slot.Date, slot.StartTime)
		if err != nil {
			s.logger.Warn("ListFutureSlots: skipping slot=%s with unreadable start: %v", slot.ID, err)
			continue
		}
		if start.After(now) {
			future = append(future, slot)
		}
	}

	s.logger.Info("ListFutureSlots: %d of %d slots start after %s", len(future), len(slots), now.Format("2006-01-02 15:04"))
	return models.FromDomainSlotList(future), nil
}

// ListSlotsForActor возвращает бронирования участника без административных блокировок
func (s *Service) ListSlotsForActor(ctx context.Context, actor domain.Actor) ([]models.SlotResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrMissingActor
	}

	slots, err := s.slotRepo.List(ctx, domain.SlotFilter{Occupant: &actor, ExcludeBlocked: true})
	if err != nil {
		s.logger.Error("ListSlotsForActor: repository error for actor=%s: %v", actor, err)
		return nil, fmt.Errorf("%w: ListSlotsForActor - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListSlotsForActor: fetched %d slots for actor=%s", len(slots), actor)
	return models.FromDomainSlotList(slots), nil
}

// GetSlot возвращает слот по ID
func (s *Service) GetSlot(ctx context.Context, id string) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetSlot: slot id=%s not found", id)
			return nil, fmt.Errorf("%w: id=%s", domain.ErrSlotNotFound, id)
		}
		s.logger.Error("GetSlot: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetSlot - repository error: %w", ErrInternal, err)
	}
	return slot, nil
}

// DeleteSlot удаляет слот. Повторное удаление возвращает ErrSlotNotFound.
// Права доступа проверяет вызывающая сторона.
func (s *Service) DeleteSlot(ctx context.Context, id string) error {
	s.logger.Info("DeleteSlot: deleting slot id=%s", id)

	err := s.slotRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("DeleteSlot: slot id=%s not found", id)
			err = fmt.Errorf("%w: id=%s", domain.ErrSlotNotFound, id)
		} else {
			s.logger.Error("DeleteSlot: repository error for slot id=%s: %v", id, err)
			err = fmt.Errorf("%w: DeleteSlot - repository error: %w", ErrInternal, err)
		}
		s.metrics.RecordOperation("delete_slot", domain.KindOf(err))
		return err
	}

	s.metrics.RecordOperation("delete_slot", "ok")
	s.logger.Info("DeleteSlot: successfully deleted slot id=%s", id)
	return nil
}

// GetDayStats считает завершенные, текущие и предстоящие слоты даты относительно текущего момента.
// Пустая дата означает сегодня в зоне кухни.
func (s *Service) GetDayStats(ctx context.Context, date types.Date) (*models.DayStatsResponse, error) {
	if date.IsZero() {
		date = s.clock.Today()
	}
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTimeFormat, err)
	}

	slots, err := s.slotRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetDayStats: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: GetDayStats - repository error: %w", ErrInternal, err)
	}

	now := s.clock.Now()
	stats := domain.DayStats{Date: date, Total: len(slots)}
	for _, slot := range slots {
		switch slot.State {
		case domain.SlotFree:
			stats.Free++
		case domain.SlotBooked:
			stats.Booked++
		case domain.SlotBlocked:
			stats.Blocked++
		}

		start, err := s.clock.Instant(slot.Date, slot.StartTime)
		if err != nil {
			s.logger.Warn("GetDayStats: skipping slot=%s with unreadable start: %v", slot.ID, err)
			continue
		}
		end, err := s.clock.Instant(slot.Date, slot.EndTime)
		if err != nil {
			s.logger.Warn("GetDayStats: skipping slot=%s with unreadable end: %v", slot.ID, err)
			continue
		}

		switch {
		case !end.After(now):
			stats.Completed++
		case !start.Before(now):
			stats.Upcoming++
		default:
			stats.InProgress++
		}
	}

	s.logger.Info("GetDayStats: date=%s total=%d completed=%d inProgress=%d upcoming=%d",
		date, stats.Total, stats.Completed, stats.InProgress, stats.Upcoming)
	return models.FromDomainDayStats(stats), nil
}
