package shops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
	shopRepo "github.com/khan47650/central-kitchen/internal/infra/storage/shop"
	"github.com/khan47650/central-kitchen/internal/service/shops/models"
)

// Service сервис магазинов: создание, чтение расписания со статусом и удаление
type Service struct {
	shopRepo  ShopRepository
	txManager TransactionManager
	clock     Clock
	editLock  time.Duration
	logger    Logger
}

// NewService создает новый экземпляр сервиса магазинов
func NewService(
	shopRepo ShopRepository,
	txManager TransactionManager,
	clock Clock,
	editLock time.Duration,
	logger Logger,
) *Service {
	return &Service{
		shopRepo:  shopRepo,
		txManager: txManager,
		clock:     clock,
		editLock:  editLock,
		logger:    logger,
	}
}

// CreateShop создает магазин с семью закрытыми днями
func (s *Service) CreateShop(ctx context.Context, req *models.CreateShopRequest) (*models.ShopResponse, error) {
	s.logger.Info("CreateShop: creating shop %q for owner=%s", req.Name, req.OwnerID)

	if req.OwnerID == "" {
		return nil, domain.ErrMissingActor
	}
	if req.Name == "" {
		s.logger.Warn("CreateShop: empty shop name for owner=%s", req.OwnerID)
		return nil, fmt.Errorf("%w: shopName is required", domain.ErrInvalidInput)
	}

	shop := &domain.Shop{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Timings:     domain.NewTimetable(),
	}

	var created *domain.Shop
	// Магазин и строки расписания пишутся вместе
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.shopRepo.Create(txCtx, shop)
		return err
	})
	if err != nil {
		s.logger.Error("CreateShop: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateShop - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateShop: successfully created shop id=%s", created.ID)
	return s.view(created), nil
}

// GetShop возвращает магазин без вычисленных полей (для проверки прав)
func (s *Service) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("GetShop: shop id=%s not found", id)
			return nil, fmt.Errorf("%w: id=%s", domain.ErrShopNotFound, id)
		}
		s.logger.Error("GetShop: repository error for shop id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetShop - repository error: %w", ErrInternal, err)
	}
	return shop, nil
}

// GetShopTimings возвращает расписание магазина со статусом и блокировками на текущий момент
func (s *Service) GetShopTimings(ctx context.Context, id string) (*models.ShopResponse, error) {
	shop, err := s.GetShop(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(shop), nil
}

// ListOwnerShops возвращает магазины владельца
func (s *Service) ListOwnerShops(ctx context.Context, ownerID string) ([]models.ShopResponse, error) {
	shops, err := s.shopRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListOwnerShops: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListOwnerShops - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListOwnerShops: fetched %d shops for owner=%s", len(shops), ownerID)
	return s.viewList(shops), nil
}

// ListShops возвращает все магазины
func (s *Service) ListShops(ctx context.Context) ([]models.ShopResponse, error) {
	shops, err := s.shopRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListShops: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListShops - repository error: %w", ErrInternal, err)
	}
	return s.viewList(shops), nil
}

// DeleteShop удаляет магазин вместе с расписанием
func (s *Service) DeleteShop(ctx context.Context, id string) error {
	s.logger.Info("DeleteShop: deleting shop id=%s", id)

	err := s.shopRepo.Delete(ctx, id)
	if cache, ok := s.shopRepo.(Invalidator); ok {
		cache.Invalidate(id)
	}
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("DeleteShop: shop id=%s not found", id)
			return fmt.Errorf("%w: id=%s", domain.ErrShopNotFound, id)
		}
		s.logger.Error("DeleteShop: repository error for shop id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteShop - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteShop: successfully deleted shop id=%s", id)
	return nil
}

func (s *Service) view(shop *domain.Shop) *models.ShopResponse {
	v := domain.ViewShop(shop, s.clock.Now(), s.editLock)
	return models.FromDomainView(&v)
}

func (s *Service) viewList(shops []*domain.Shop) []models.ShopResponse {
	now := s.clock.Now()
	resp := make([]models.ShopResponse, 0, len(shops))
	for _, shop := range shops {
		v := domain.ViewShop(shop, now, s.editLock)
		resp = append(resp, *models.FromDomainView(&v))
	}
	return resp
}
