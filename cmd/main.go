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

	cancelBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_booking"
	createLeaveHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_leave"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_branch_bookings"
	getBranchLeavesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_branch_leaves"
	getBranchScheduleHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_branch_schedule"
	getCommissionReportHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_commission_report"
	getCustomerHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_customer"
	getCustomerBookingsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_customer_bookings"
	migrateCustomerPhoneHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/migrate_customer_phone"
	resolveLeaveHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/resolve_leave"
	updateBookingPaymentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_booking_payment"
	updateBookingStatusHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_booking_status"
	updateBranchScheduleHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_branch_schedule"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/config"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	bookingRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	customerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/customer"
	leaveRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/leave"
	serviceRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/service"
	notifyServiceClient "github.com/m04kA/SMC-BarberService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/SMC-BarberService/internal/service/bookings"
	customersService "github.com/m04kA/SMC-BarberService/internal/service/customers"
	leavesService "github.com/m04kA/SMC-BarberService/internal/service/leaves"
	scheduleService "github.com/m04kA/SMC-BarberService/internal/service/schedule"
	commissionReportUC "github.com/m04kA/SMC-BarberService/internal/usecase/commission_report"
	createBookingUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

// TxManager общий интерфейс обоих менеджеров транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting SMC-BarberService...")
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

	// Инициализируем интеграционного клиента
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		leaveRepository    *leaveRepo.Repository
		branchRepository   *branchRepo.Repository
		barberRepository   *barberRepo.Repository
		serviceRepository  *serviceRepo.Repository
		customerRepository *customerRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		leaveRepository = leaveRepo.NewRepository(wrappedDB)
		branchRepository = branchRepo.NewRepository(wrappedDB)
		barberRepository = barberRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		leaveRepository = leaveRepo.NewRepository(db)
		branchRepository = branchRepo.NewRepository(db)
		barberRepository = barberRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		branchRepository,
		notifyClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		branchRepository,
		barberRepository,
		log,
	)
	leavesSvc := leavesService.NewService(
		leaveRepository,
		barberRepository,
		branchRepository,
		log,
	)
	customersSvc := customersService.NewService(
		customerRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		leaveRepository,
		branchRepository,
		barberRepository,
		serviceRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		leaveRepository,
		branchRepository,
		barberRepository,
		serviceRepository,
		customerRepository,
		notifyClient,
		txMgr,
		log,
	)
	commissionReportUseCase := commissionReportUC.NewUseCase(
		bookingRepository,
		branchRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateBookingPayment := updateBookingPaymentHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	getBranchSchedule := getBranchScheduleHandler.NewHandler(scheduleSvc, log)
	updateBranchSchedule := updateBranchScheduleHandler.NewHandler(scheduleSvc, log)
	createLeave := createLeaveHandler.NewHandler(leavesSvc, log)
	getBranchLeaves := getBranchLeavesHandler.NewHandler(leavesSvc, log)
	resolveLeave := resolveLeaveHandler.NewHandler(leavesSvc, log)
	getCommissionReport := getCommissionReportHandler.NewHandler(commissionReportUseCase, log)
	getCustomer := getCustomerHandler.NewHandler(customersSvc, log)
	migrateCustomerPhone := migrateCustomerPhoneHandler.NewHandler(customersSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов барбера
	api.HandleFunc("/branches/{branchId}/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение расписания филиала
	api.HandleFunc("/branches/{branchId}/schedule",
		getBranchSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Обновление платежного состояния
	protected.HandleFunc("/bookings/{bookingId}/payment", updateBookingPayment.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление филиалом (для менеджеров) ---
	// Список бронирований филиала
	protected.HandleFunc("/branches/{branchId}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

	// Обновление расписания филиала
	protected.HandleFunc("/branches/{branchId}/schedule", updateBranchSchedule.Handle).Methods(http.MethodPut)

	// Отчет по комиссии барберов за месяц
	protected.HandleFunc("/branches/{branchId}/commission-report", getCommissionReport.Handle).Methods(http.MethodGet)

	// --- Заявки на отсутствие ---
	// Создание заявки
	protected.HandleFunc("/barbers/{barberId}/leaves", createLeave.Handle).Methods(http.MethodPost)

	// Список заявок филиала (для менеджеров)
	protected.HandleFunc("/branches/{branchId}/leaves", getBranchLeaves.Handle).Methods(http.MethodGet)

	// Утверждение или отклонение заявки (для менеджеров)
	protected.HandleFunc("/leaves/{leaveId}/status", resolveLeave.Handle).Methods(http.MethodPatch)

	// --- Клиенты (CRM) ---
	// Карточка клиента
	protected.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)

	// Миграция номера телефона
	protected.HandleFunc("/customers/{customerId}/migrate-phone", migrateCustomerPhone.Handle).Methods(http.MethodPost)

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
