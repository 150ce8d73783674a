package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	bookSlotHandler "github.com/khan47650/central-kitchen/internal/api/handlers/book_slot"
	createShopHandler "github.com/khan47650/central-kitchen/internal/api/handlers/create_shop"
	createSlotHandler "github.com/khan47650/central-kitchen/internal/api/handlers/create_slot"
	deleteShopHandler "github.com/khan47650/central-kitchen/internal/api/handlers/delete_shop"
	deleteSlotHandler "github.com/khan47650/central-kitchen/internal/api/handlers/delete_slot"
	getDayStatsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/get_day_stats"
	getShopTimingsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/get_shop_timings"
	listFutureSlotsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/list_future_slots"
	listShopsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/list_shops"
	listSlotsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/list_slots"
	listUserShopsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/list_user_shops"
	listUserSlotsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/list_user_slots"
	updateShopTimingsHandler "github.com/khan47650/central-kitchen/internal/api/handlers/update_shop_timings"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/config"
	"github.com/khan47650/central-kitchen/internal/infra/cache/shopcache"
	"github.com/khan47650/central-kitchen/internal/integrations/notifier"
	shopsService "github.com/khan47650/central-kitchen/internal/service/shops"
	slotsService "github.com/khan47650/central-kitchen/internal/service/slots"
	bookSlotUC "github.com/khan47650/central-kitchen/internal/usecase/book_slot"
	createSlotUC "github.com/khan47650/central-kitchen/internal/usecase/create_slot"
	updateShopTimingsUC "github.com/khan47650/central-kitchen/internal/usecase/update_shop_timings"
	"github.com/khan47650/central-kitchen/pkg/logger"
	"github.com/khan47650/central-kitchen/pkg/metrics"
	"github.com/khan47650/central-kitchen/pkg/zonetime"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting central-kitchen...")
	log.Info("Configuration loaded from config.toml")

	zone, err := zonetime.Load(cfg.Scheduling.TimeZone)
	if err != nil {
		log.Fatal("Failed to load time zone: %v", err)
	}
	log.Info("Kitchen time zone: %s", zone.Location())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	shopRepository := store.shops
	if ttl := cfg.Cache.ShopTimingsTTL(); ttl > 0 {
		shopRepository = shopcache.New(store.shops, ttl)
		log.Info("Shop cache enabled (ttl=%s)", ttl)
	}

	// Подтверждения бронирований
	var (
		bookingNotifier bookSlotUC.Notifier = notifier.Noop{}
		redisClient     *redis.Client
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		bookingNotifier = notifier.NewRedisNotifier(redisClient, cfg.Redis.Stream, cfg.Redis.StreamMax, log)
		log.Info("Booking confirmations published to %s (stream=%s)", cfg.Redis.Address, cfg.Redis.Stream)
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(store.slots, zone, metricsCollector, log)
	shopSvc := shopsService.NewService(shopRepository, store.tx, zone, cfg.Scheduling.EditLock(), log)

	// Инициализируем use cases
	createSlotUseCase := createSlotUC.NewUseCase(
		store.slots,
		store.tx,
		metricsCollector,
		log,
		cfg.Scheduling.MaxBookingHours,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		store.slots,
		store.tx,
		zone,
		bookingNotifier,
		metricsCollector,
		log,
		cfg.Scheduling.MaxBookingHours,
	)
	updateShopTimingsUseCase := updateShopTimingsUC.NewUseCase(
		shopRepository,
		store.tx,
		zone,
		cfg.Scheduling.EditLock(),
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(createSlotUseCase, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	listFutureSlots := listFutureSlotsHandler.NewHandler(slotSvc, log)
	listUserSlots := listUserSlotsHandler.NewHandler(slotSvc, log)
	getDayStats := getDayStatsHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	createShop := createShopHandler.NewHandler(shopSvc, log)
	listShops := listShopsHandler.NewHandler(shopSvc, log)
	listUserShops := listUserShopsHandler.NewHandler(shopSvc, log)
	getShopTimings := getShopTimingsHandler.NewHandler(shopSvc, log)
	updateShopTimings := updateShopTimingsHandler.NewHandler(updateShopTimingsUseCase, log)
	deleteShop := deleteShopHandler.NewHandler(shopSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.ping(ctx); err != nil {
			log.Warn("GET /readyz - Database not ready: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "NotReady", "database unavailable")
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Warn("GET /readyz - Redis not ready: %v", err)
				handlers.RespondError(w, http.StatusServiceUnavailable, "NotReady", "redis unavailable")
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
		api.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные и занятые слоты
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/future", listFutureSlots.Handle).Methods(http.MethodGet)

	// Магазины со статусом и расписанием
	api.HandleFunc("/shops", listShops.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/timings", getShopTimings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/book", bookSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/slots", listUserSlots.Handle).Methods(http.MethodGet)

	// Статистика дня только для администратора
	protected.Handle("/slots/stats", middleware.RequireAdmin(http.HandlerFunc(getDayStats.Handle))).Methods(http.MethodGet)

	// --- Магазины ---
	protected.HandleFunc("/shops", createShop.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/shops", listUserShops.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/timings", updateShopTimings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/shops/{shopId}", deleteShop.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
