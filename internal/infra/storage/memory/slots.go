package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khan47650/central-kitchen/internal/domain"
	slotRepo "github.com/khan47650/central-kitchen/internal/infra/storage/slot"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// SlotRepository слоты в памяти. Create и Update сами отклоняют пересечения,
// как ограничение EXCLUDE в PostgreSQL.
type SlotRepository struct {
	mu    sync.RWMutex
	slots map[string]domain.Slot
	locks *dateLocks
	now   func() time.Time
}

func newSlotRepository(locks *dateLocks, now func() time.Time) *SlotRepository {
	return &SlotRepository{
		slots: make(map[string]domain.Slot),
		locks: locks,
		now:   now,
	}
}

// LockDate берет мьютекс даты до конца текущей области TxManager
func (r *SlotRepository) LockDate(ctx context.Context, date types.Date) error {
	if sc := scopeFrom(ctx); sc != nil {
		sc.lock(r.locks, date)
	}
	return nil
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if err := r.checkOverlap(slot); err != nil {
		return nil, fmt.Errorf("Create - %w", err)
	}

	now := r.now()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	r.slots[slot.ID] = *slot

	out := *slot
	return &out, nil
}

func (r *SlotRepository) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.slots[slot.ID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if err := r.checkOverlap(slot); err != nil {
		return nil, fmt.Errorf("Update - %w", err)
	}

	stored.EndTime = slot.EndTime
	stored.State = slot.State
	stored.Occupant = slot.Occupant
	stored.UpdatedAt = r.now()
	r.slots[slot.ID] = stored

	out := stored
	return &out, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &stored, nil
}

func (r *SlotRepository) ListByDate(ctx context.Context, date types.Date) ([]*domain.Slot, error) {
	return r.List(ctx, domain.SlotFilter{Date: &date})
}

func (r *SlotRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Slot, 0)
	for _, id := range sortedKeys(r.slots) {
		s := r.slots[id]
		if filter.Date != nil && s.Date != *filter.Date {
			continue
		}
		if filter.Occupant != nil && s.Occupant != *filter.Occupant {
			continue
		}
		if filter.ExcludeBlocked && s.IsBlocked() {
			continue
		}
		out = append(out, &s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out, nil
}

func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(r.slots, id)
	return nil
}

// checkOverlap вызывается под r.mu
func (r *SlotRepository) checkOverlap(slot *domain.Slot) error {
	if err := slot.Validate(); err != nil {
		return fmt.Errorf("%w: %w", slotRepo.ErrInvalidSlot, err)
	}

	sameDay := make([]*domain.Slot, 0)
	for id := range r.slots {
		s := r.slots[id]
		if s.Date == slot.Date {
			sameDay = append(sameDay, &s)
		}
	}

	conflict, err := domain.FindConflict(sameDay, slot.Date, slot.StartTime, slot.EndTime, slot.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", slotRepo.ErrInvalidSlot, err)
	}
	if conflict != nil {
		return fmt.Errorf("%w: conflicts with %s", slotRepo.ErrSlotOverlap, conflict.ID)
	}
	return nil
}
