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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	cancelReservationHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/create_reservation"
	deleteBookingConfigHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/delete_booking_config"
	getAvailableWindowsHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/get_available_windows"
	getBookingConfigHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/get_booking_config"
	getReservationHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/list_reservations"
	updateBookingConfigHandler "github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers/update_booking_config"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/config"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
	reservationRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/reservation"
	"github.com/NeedlesUK/tattsync2-sub002/internal/integrations/notifier"
	configService "github.com/NeedlesUK/tattsync2-sub002/internal/service/config"
	reservationsService "github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations"
	createReservationUC "github.com/NeedlesUK/tattsync2-sub002/internal/usecase/create_reservation"
	getAvailableWindowsUC "github.com/NeedlesUK/tattsync2-sub002/internal/usecase/get_available_windows"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/dbmetrics"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/metrics"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/txmanager"
)

// eventNotifier общий интерфейс для redis-уведомлений и заглушки
type eventNotifier interface {
	NotifyAsync(evt notifier.ReservationEvent)
	Wait()
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

	log.Info("Starting TattSync booking service...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Метрики создаются всегда (их используют репозитории и use cases),
	// наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)

	// Проверяем соединение
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = wrappedDB.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Уведомления о бронированиях через Redis Pub/Sub
	var events eventNotifier = notifier.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(redisCtx).Err(); err != nil {
			// Без Redis сервис продолжает работать, уведомления будут падать и считаться в метрике
			log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		}
		redisCancel()

		events = notifier.NewNotifier(
			redisClient,
			cfg.Notifier.Channel,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Reservation notifier publishes to redis channel %q", cfg.Notifier.Channel)
	} else {
		log.Info("Redis disabled, reservation notifications are not sent")
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		configRepository,
		txMgr,
		events,
		metricsCollector,
		location,
		log,
	)
	configSvc := configService.NewService(configRepository, txMgr, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		txMgr,
		events,
		metricsCollector,
		location,
		log,
	)
	getAvailableWindowsUseCase := getAvailableWindowsUC.NewUseCase(
		reservationRepository,
		configRepository,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableWindows := getAvailableWindowsHandler.NewHandler(getAvailableWindowsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getBookingConfig := getBookingConfigHandler.NewHandler(configSvc, log)
	updateBookingConfig := updateBookingConfigHandler.NewHandler(configSvc, log)
	deleteBookingConfig := deleteBookingConfigHandler.NewHandler(configSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, stopCh)
		api.Use(limiter.Limit)
		log.Info("Rate limiting enabled: %.1f req/s, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (X-User-ID опционален: владелец видит больше)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Окна календаря на дату
	public.HandleFunc("/resources/{resourceId}/events/{eventId}/windows",
		getAvailableWindows.Handle).Methods(http.MethodGet)

	// Настройки календаря
	public.HandleFunc("/resources/{resourceId}/events/{eventId}/config",
		getBookingConfig.Handle).Methods(http.MethodGet)

	// Бронирование окна клиентом
	public.HandleFunc("/resources/{resourceId}/events/{eventId}/reservations",
		createReservation.Handle).Methods(http.MethodPost)

	// Просмотр и отмена: клиент по email, владелец по X-User-ID
	public.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	public.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление календарём (для владельца) ---
	protected.HandleFunc("/resources/{resourceId}/events/{eventId}/config",
		updateBookingConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/resources/{resourceId}/events/{eventId}/config",
		deleteBookingConfig.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/resources/{resourceId}/events/{eventId}/reservations",
		listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/complete",
		completeReservation.Handle).Methods(http.MethodPatch)

	// CORS для веб-клиента
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.UserIDHeader},
		MaxAge:         cfg.CORS.MaxAge,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений, запущенных обработанными запросами
	events.Wait()

	// Останавливаем сбор метрик connection pool и очистку rate limiter
	close(stopCh)

	log.Info("Server stopped gracefully")
}
