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

	cancelBookingHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/cancel_booking"
	cancelScheduleHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/cancel_schedule"
	confirmWaitlistHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/confirm_waitlist"
	createBookingHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/get_booking"
	getScheduleBookingsHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/get_schedule_bookings"
	getScheduleWaitlistHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/get_schedule_waitlist"
	getUserBookingsHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/get_user_bookings"
	getUserWaitlistHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/get_user_waitlist"
	joinWaitlistHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/join_waitlist"
	leaveWaitlistHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/leave_waitlist"
	markAttendanceHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/mark_attendance"
	rateBookingHandler "github.com/m04kA/FitnessClassService/internal/api/handlers/rate_booking"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	"github.com/m04kA/FitnessClassService/internal/config"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	trainerRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/trainer"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
	notifyServiceClient "github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/FitnessClassService/internal/service/bookings"
	waitlistService "github.com/m04kA/FitnessClassService/internal/service/waitlist"
	cancelBookingUC "github.com/m04kA/FitnessClassService/internal/usecase/cancel_booking"
	cancelScheduleUC "github.com/m04kA/FitnessClassService/internal/usecase/cancel_schedule"
	confirmWaitlistUC "github.com/m04kA/FitnessClassService/internal/usecase/confirm_waitlist"
	createBookingUC "github.com/m04kA/FitnessClassService/internal/usecase/create_booking"
	joinWaitlistUC "github.com/m04kA/FitnessClassService/internal/usecase/join_waitlist"
	leaveWaitlistUC "github.com/m04kA/FitnessClassService/internal/usecase/leave_waitlist"
	markAttendanceUC "github.com/m04kA/FitnessClassService/internal/usecase/mark_attendance"
	rateBookingUC "github.com/m04kA/FitnessClassService/internal/usecase/rate_booking"
	"github.com/m04kA/FitnessClassService/pkg/dbmetrics"
	"github.com/m04kA/FitnessClassService/pkg/logger"
	"github.com/m04kA/FitnessClassService/pkg/metrics"
	"github.com/m04kA/FitnessClassService/pkg/simpletxmanager"
	"github.com/m04kA/FitnessClassService/pkg/txmanager"
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

	log.Info("Starting FitnessClassService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notify client initialized (url=%s timeout=%ds)", cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository *scheduleRepo.Repository
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
		trainerRepository  *trainerRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		trainerRepository = trainerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		trainerRepository = trainerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Временные окна бизнес-правил отмены и подтверждения
	windows := cancelBookingUC.Windows{
		CancellationDeadline: time.Duration(cfg.Booking.CancellationDeadlineMinutes) * time.Minute,
		LateThreshold:        time.Duration(cfg.Booking.LateCancellationMinutes) * time.Minute,
		ConfirmationWindow:   time.Duration(cfg.Booking.ConfirmationWindowMinutes) * time.Minute,
	}

	// Инициализируем read сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, scheduleRepository, log)
	waitlistSvc := waitlistService.NewService(waitlistRepository, scheduleRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		notifyClient,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		waitlistRepository,
		notifyClient,
		txMgr,
		windows,
		log,
	)
	joinWaitlistUseCase := joinWaitlistUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		waitlistRepository,
		txMgr,
		log,
	)
	leaveWaitlistUseCase := leaveWaitlistUC.NewUseCase(
		scheduleRepository,
		waitlistRepository,
		txMgr,
		log,
	)
	confirmWaitlistUseCase := confirmWaitlistUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		waitlistRepository,
		notifyClient,
		txMgr,
		log,
	)
	cancelScheduleUseCase := cancelScheduleUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		waitlistRepository,
		notifyClient,
		txMgr,
		log,
	)
	rateBookingUseCase := rateBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		trainerRepository,
		txMgr,
		log,
	)
	markAttendanceUseCase := markAttendanceUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rateBooking := rateBookingHandler.NewHandler(rateBookingUseCase, log)
	markAttendance := markAttendanceHandler.NewHandler(markAttendanceUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleBookings := getScheduleBookingsHandler.NewHandler(bookingSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(joinWaitlistUseCase, log)
	leaveWaitlist := leaveWaitlistHandler.NewHandler(leaveWaitlistUseCase, log)
	confirmWaitlist := confirmWaitlistHandler.NewHandler(confirmWaitlistUseCase, log)
	getScheduleWaitlist := getScheduleWaitlistHandler.NewHandler(waitlistSvc, log)
	getUserWaitlist := getUserWaitlistHandler.NewHandler(waitlistSvc, log)
	cancelSchedule := cancelScheduleHandler.NewHandler(cancelScheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют заголовков X-User-ID / X-User-Role
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/rating", rateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/attendance", markAttendance.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}/bookings", getScheduleBookings.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	protected.HandleFunc("/schedules/{scheduleId}/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}/waitlist", getScheduleWaitlist.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/waitlist/{entryId}", leaveWaitlist.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/waitlist/{entryId}/confirm", confirmWaitlist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/waitlist", getUserWaitlist.Handle).Methods(http.MethodGet)

	// --- Занятия ---
	protected.HandleFunc("/schedules/{scheduleId}/cancel", cancelSchedule.Handle).Methods(http.MethodPatch)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
