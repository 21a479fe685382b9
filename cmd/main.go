package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingSessionHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/booking_session"
	generateSlotsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_user_reservations"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/config"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/session"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/inmemory"
	reservationRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/paymentgateway"
	reservationsService "github.com/m04kA/SMC-PlaygroundBooking/internal/service/reservations"
	sessionsService "github.com/m04kA/SMC-PlaygroundBooking/internal/service/sessions"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/workflow"
	generateSlotsUC "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/logger"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/metrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/txmanager"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// slotCatalog каталог слотов: in-memory или PostgreSQL
type slotCatalog interface {
	ListAvailable(ctx context.Context, resourceID string, date time.Time) ([]*domain.TimeSlot, error)
	GetByIDs(ctx context.Context, slotIDs []string) ([]*domain.TimeSlot, error)
	MarkBooked(ctx context.Context, slotIDs []string) error
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error)
}

// reservationStore хранилище броней: in-memory или PostgreSQL
type reservationStore interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionStore interface {
	Save(ctx context.Context, sess *domain.BookingSession) error
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
}

type eventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event notifier.ReservationConfirmedEvent) error
}

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

	log.Info("Starting SMC-PlaygroundBooking...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище слотов и броней
	var (
		catalog      slotCatalog
		reservations reservationStore
		txMgr        txManager
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// Обёртка собирает метрики запросов, если metricsCollector != nil
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		pgTxManager := txmanager.NewTransactionManager(wrappedDB)

		catalog = slotRepo.NewRepository(wrappedDB, pgTxManager)
		reservations = reservationRepo.NewRepository(wrappedDB)
		txMgr = pgTxManager

	default:
		catalog = inmemory.NewCatalog()
		reservations = inmemory.NewReservationRepository()
		txMgr = inmemory.NewTxManager()
		log.Info("Using in-memory storage")
	}

	// Инициализируем хранилище сессий
	var sessions sessionStore
	switch cfg.Session.Driver {
	case config.DriverRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL())
		log.Info("Using redis session store (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Session.TTL())

	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL())
		log.Info("Using in-memory session store (ttl=%s)", cfg.Session.TTL())
	}

	// Инициализируем интеграции
	var publisher eventPublisher = notifier.Noop{}
	if cfg.RabbitMQ.Enabled {
		rabbit, err := notifier.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info("Reservation events are published to queue %s", cfg.RabbitMQ.Queue)
	}

	payments := paymentgateway.NewSimulator(cfg.Payment.Latency(), log)

	// Инициализируем сервисы
	workflowSvc := workflow.NewService(
		catalog,
		reservations,
		payments,
		publisher,
		txMgr,
		metricsCollector,
		log,
		&workflow.RealTimeProvider{},
	)
	sessionSvc := sessionsService.NewService(
		sessions,
		catalog,
		workflowSvc,
		log,
		&sessionsService.RealTimeProvider{},
	)
	reservationSvc := reservationsService.NewService(
		reservations,
		log,
		&reservationsService.RealTimeProvider{},
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalog,
		cfg.Booking.WindowDays,
		cfg.Booking.MinNoticeMinutes,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(catalog, log)

	// Заполняем каталог на окно бронирования
	if cfg.Seed.Enabled {
		seedCatalog(generateSlotsUseCase, cfg, log)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	bookingSession := bookingSessionHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLSeconds)*time.Second,
		)
		go limiter.RunCleanup(time.Minute, stopCh)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты площадки на дату
	api.HandleFunc("/resources/{resourceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Каталог ---
	protected.HandleFunc("/resources/{resourceId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// --- Сессия бронирования ---
	protected.HandleFunc("/sessions", bookingSession.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}/selection", bookingSession.ToggleSlot).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/selection", bookingSession.ClearSelection).Methods(http.MethodDelete)
	protected.HandleFunc("/sessions/{sessionId}/open", bookingSession.Open).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/confirm", bookingSession.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/pay", bookingSession.Pay).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/cancel", bookingSession.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/reset", bookingSession.Reset).Methods(http.MethodPost)

	// --- Брони пользователя ---
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик пула и очистку rate limiter
	close(stopCh)

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

// seedCatalog создает слоты каждой площадки на все дни окна бронирования; существующие пропускаются
func seedCatalog(uc *generateSlotsUC.UseCase, cfg *config.Config, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := domain.DateOnly(time.Now())
	price := cfg.Seed.Price

	for _, resourceID := range cfg.Seed.ResourceIDs {
		for day := 0; day < cfg.Booking.WindowDays; day++ {
			resp, err := uc.Execute(ctx, &generateSlotsUC.Request{
				ResourceID: resourceID,
				Date:       today.AddDate(0, 0, day),
				OpenTime:   types.TimeString(cfg.Seed.OpenTime),
				CloseTime:  types.TimeString(cfg.Seed.CloseTime),
				Price:      &price,
			})
			if err != nil {
				log.Fatal("Failed to seed slots for resource=%s: %v", resourceID, err)
			}
			log.Debug("Seeded resource=%s date=%s: created=%d, skipped=%d",
				resourceID, resp.Date.Format(domain.DateFormat), len(resp.Created), resp.Skipped)
		}
	}

	log.Info("Catalog seeded for %d resources, %d days", len(cfg.Seed.ResourceIDs), cfg.Booking.WindowDays)
}
