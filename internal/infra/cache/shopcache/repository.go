package shopcache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// ShopRepository хранилище магазинов, которое оборачивает кэш
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Shop, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shop, error)
	List(ctx context.Context) ([]*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id string) error
}

// Repository read-through кэш магазинов по ID.
// Кэшируется только сохраненное расписание: статус и блокировки вычисляются при каждом чтении.
type Repository struct {
	next  ShopRepository
	store *cache.Cache
}

// New создает кэш с временем жизни записи ttl
func New(next ShopRepository, ttl time.Duration) *Repository {
	return &Repository{
		next:  next,
		store: cache.New(ttl, 2*ttl),
	}
}

func (r *Repository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	return r.next.Create(ctx, shop)
}

// GetByID отдает копию из кэша или читает из хранилища
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	if cached, ok := r.store.Get(id); ok {
		shop := copyShop(cached.(domain.Shop))
		return &shop, nil
	}

	shop, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.SetDefault(id, copyShop(*shop))
	return shop, nil
}

// GetByIDForUpdate всегда идет в хранилище
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Shop, error) {
	return r.next.GetByIDForUpdate(ctx, id)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shop, error) {
	return r.next.ListByOwner(ctx, ownerID)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Shop, error) {
	return r.next.List(ctx)
}

func (r *Repository) Update(ctx context.Context, shop *domain.Shop) error {
	r.store.Delete(shop.ID)
	return r.next.Update(ctx, shop)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.store.Delete(id)
	return r.next.Delete(ctx, id)
}

// Invalidate удаляет запись, например после коммита транзакции
func (r *Repository) Invalidate(id string) {
	r.store.Delete(id)
}

func copyShop(s domain.Shop) domain.Shop {
	table := domain.NewTimetable()
	for day, row := range s.Timings {
		table[day] = row
	}
	s.Timings = table
	return s
}
