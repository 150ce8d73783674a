package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khan47650/central-kitchen/internal/domain"
	shopRepo "github.com/khan47650/central-kitchen/internal/infra/storage/shop"
)

// ShopRepository магазины в памяти
type ShopRepository struct {
	mu    sync.RWMutex
	shops map[string]domain.Shop
	now   func() time.Time
}

func newShopRepository(now func() time.Time) *ShopRepository {
	return &ShopRepository{shops: make(map[string]domain.Shop), now: now}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if shop.ID == "" {
		shop.ID = uuid.NewString()
	}
	if shop.Timings == nil {
		shop.Timings = domain.NewTimetable()
	}
	now := r.now()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	r.shops[shop.ID] = cloneShop(*shop)
	out := cloneShop(*shop)
	return &out, nil
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.shops[id]
	if !ok {
		return nil, shopRepo.ErrShopNotFound
	}
	out := cloneShop(stored)
	return &out, nil
}

// GetByIDForUpdate совпадает с GetByID: запись сериализуется мьютексом хранилища
func (r *ShopRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Shop, error) {
	return r.GetByID(ctx, id)
}

func (r *ShopRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shop, error) {
	return r.filter(func(s domain.Shop) bool { return s.OwnerID == ownerID }), nil
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	return r.filter(func(domain.Shop) bool { return true }), nil
}

func (r *ShopRepository) filter(keep func(domain.Shop) bool) []*domain.Shop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Shop, 0)
	for _, id := range sortedKeys(r.shops) {
		if s := r.shops[id]; keep(s) {
			c := cloneShop(s)
			out = append(out, &c)
		}
	}
	return out
}

func (r *ShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.shops[shop.ID]
	if !ok {
		return shopRepo.ErrShopNotFound
	}
	stored.Name = shop.Name
	stored.Address = shop.Address
	stored.Description = shop.Description
	stored.Timings = cloneTimetable(shop.Timings)
	stored.UpdatedAt = r.now()
	r.shops[shop.ID] = stored
	return nil
}

func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shops[id]; !ok {
		return shopRepo.ErrShopNotFound
	}
	delete(r.shops, id)
	return nil
}

func cloneShop(s domain.Shop) domain.Shop {
	s.Timings = cloneTimetable(s.Timings)
	return s
}

func cloneTimetable(t domain.Timetable) domain.Timetable {
	out := domain.NewTimetable()
	for day, row := range t {
		out[day] = row
	}
	return out
}
