package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/khan47650/central-kitchen/internal/config"
	"github.com/khan47650/central-kitchen/internal/infra/cache/shopcache"
	"github.com/khan47650/central-kitchen/internal/infra/storage/memory"
	shopRepo "github.com/khan47650/central-kitchen/internal/infra/storage/shop"
	slotRepo "github.com/khan47650/central-kitchen/internal/infra/storage/slot"
	slotsService "github.com/khan47650/central-kitchen/internal/service/slots"
	bookSlotUC "github.com/khan47650/central-kitchen/internal/usecase/book_slot"
	createSlotUC "github.com/khan47650/central-kitchen/internal/usecase/create_slot"
	"github.com/khan47650/central-kitchen/pkg/dbmetrics"
	"github.com/khan47650/central-kitchen/pkg/logger"
	"github.com/khan47650/central-kitchen/pkg/metrics"
	"github.com/khan47650/central-kitchen/pkg/txmanager"
)

type slotRepository interface {
	createSlotUC.SlotRepository
	bookSlotUC.SlotRepository
	slotsService.SlotRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	slots slotRepository
	shops shopcache.ShopRepository
	tx    txManager
	ping  func(ctx context.Context) error
	close func() error
}

func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage: data is lost on restart")
		store := memory.NewStore()
		return &storage{
			slots: store.Slots,
			shops: store.Shops,
			tx:    store.Tx,
			ping:  func(context.Context) error { return nil },
			close: func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	s := &storage{ping: db.PingContext, close: db.Close}
	if m != nil {
		wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")
		s.slots = slotRepo.NewRepository(wrapped)
		s.shops = shopRepo.NewRepository(wrapped)
		s.tx = txmanager.NewTransactionManager(wrapped)
	} else {
		s.slots = slotRepo.NewRepository(db)
		s.shops = shopRepo.NewRepository(db)
		s.tx = txmanager.NewTransactionManager(dbmetrics.Plain(db))
	}
	return s, nil
}
