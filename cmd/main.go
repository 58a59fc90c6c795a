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

	cancelPaymentHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/cancel_payment"
	confirmPaymentHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/delete_booking"
	generateSlotsHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/generate_slots"
	getAvailableDatesHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/get_available_dates"
	getBookingHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/get_bookings"
	getLastSlotDateHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/get_last_slot_date"
	getSlotsHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/get_slots"
	getUserBookingsHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/get_user_bookings"
	toggleSlotHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/toggle_slot"
	updatePaymentStatusHandler "github.com/m04kA/PicklePlay-BookingService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/PicklePlay-BookingService/internal/api/middleware"
	"github.com/m04kA/PicklePlay-BookingService/internal/config"
	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/customer"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/PicklePlay-BookingService/internal/integrations/mailer"
	"github.com/m04kA/PicklePlay-BookingService/internal/integrations/razorpay"
	"github.com/m04kA/PicklePlay-BookingService/internal/jobs"
	bookingsService "github.com/m04kA/PicklePlay-BookingService/internal/service/bookings"
	slotsService "github.com/m04kA/PicklePlay-BookingService/internal/service/slots"
	confirmPaymentUC "github.com/m04kA/PicklePlay-BookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/PicklePlay-BookingService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/PicklePlay-BookingService/internal/usecase/generate_slots"
	getSlotsUC "github.com/m04kA/PicklePlay-BookingService/internal/usecase/get_slots"
	"github.com/m04kA/PicklePlay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PicklePlay-BookingService/pkg/logger"
	"github.com/m04kA/PicklePlay-BookingService/pkg/metrics"
	"github.com/m04kA/PicklePlay-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/PicklePlay-BookingService/pkg/txmanager"
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

	log.Info("Starting PicklePlay-BookingService...")
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

	// Инициализируем платёжный шлюз
	razorpayClient := razorpay.NewClient(
		cfg.Razorpay.BaseURL,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		time.Duration(cfg.Razorpay.Timeout)*time.Second,
		log,
	)
	log.Info("Razorpay client initialized (url=%s, timeout=%ds)", cfg.Razorpay.BaseURL, cfg.Razorpay.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository     *slotRepo.Repository
		bookingRepository  *bookingRepo.Repository
		customerRepository *customerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем почтовый клиент (телефон для шаблона берется из
	// профиля клиента)
	type Mailer interface {
		SendBookingConfirmation(ctx context.Context, b *domain.Booking) error
	}
	var mail Mailer
	if cfg.Email.Enabled {
		mail = mailer.NewClient(
			cfg.Email.BaseURL,
			cfg.Email.ServiceID,
			cfg.Email.TemplateID,
			cfg.Email.UserID,
			customerRepository,
			time.Duration(cfg.Email.Timeout)*time.Second,
			log,
		)
		log.Info("Email client initialized (url=%s)", cfg.Email.BaseURL)
	} else {
		mail = mailer.Noop{}
		log.Info("Email sending disabled")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(slotRepository, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		domain.DayTemplate(cfg.Slots.Price),
		log,
	)

	getSlotsUseCase := getSlotsUC.NewUseCase(
		slotRepository,
		cfg.Slots.LeadTimeMinutes,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		customerRepository,
		razorpayClient,
		mail,
		txMgr,
		cfg.Slots.LeadTimeMinutes,
		cfg.Booking.PendingTTLMinutes,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		slotRepository,
		razorpayClient,
		mail,
		txMgr,
		log,
	)

	// Запускаем фоновые задачи
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	horizonKeeper := jobs.NewHorizonKeeper(generateSlotsUseCase, cfg.Slots.HorizonDays, time.Hour, log)
	go horizonKeeper.Run(jobsCtx)

	pendingExpirer := jobs.NewPendingExpirer(
		bookingRepository,
		txMgr,
		time.Duration(cfg.Booking.SweepIntervalSeconds)*time.Second,
		log,
	)
	go pendingExpirer.Run(jobsCtx)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	cancelPayment := cancelPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	toggleSlot := toggleSlotHandler.NewHandler(slotSvc, log)
	getLastSlotDate := getLastSlotDateHandler.NewHandler(slotSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты дня для календаря
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// Даты со свободными слотами
	api.HandleFunc("/slots/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	// AdminFlag дает оператору с X-Admin-Token доступ к чужим бронированиям
	// на клиентских маршрутах чтения
	protected.Use(middleware.Auth, middleware.AdminFlag(cfg.Admin.Token))

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение online-платежа
	protected.HandleFunc("/bookings/{bookingId}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)

	// Отмена неоплаченного online-бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel-payment", cancelPayment.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// Генерация инвентаря слотов
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Последняя сгенерированная дата
	admin.HandleFunc("/slots/last-date", getLastSlotDate.Handle).Methods(http.MethodGet)

	// Переключение доступности слота
	admin.HandleFunc("/slots/{slotId}/availability", toggleSlot.Handle).Methods(http.MethodPatch)

	// Список бронирований с фильтрами
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Смена статуса оплаты
	admin.HandleFunc("/bookings/{bookingId}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// Удаление бронирования с освобождением слотов
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновые задачи
	stopJobs()

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
