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

	cancelBookingHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/create_booking"
	createPlanPaymentHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/create_plan_payment"
	getBookingHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/get_bookings"
	getDayScheduleHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/get_day_schedule"
	getMeHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/get_me"
	getPlansHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/get_plans"
	getServicesHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/get_services"
	"github.com/evilazio/barbershop-booking/internal/api/handlers/health"
	loginHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/login"
	logoutHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/logout"
	mercadoPagoWebhookHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/mercadopago_webhook"
	paymentWebhookHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/payment_webhook"
	registerHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/register"
	updateProfileHandler "github.com/evilazio/barbershop-booking/internal/api/handlers/update_profile"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/config"
	bookingRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/booking"
	"github.com/evilazio/barbershop-booking/internal/infra/storage/migrations"
	planPurchaseRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/planpurchase"
	userRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/user"
	"github.com/evilazio/barbershop-booking/internal/integrations/mercadopago"
	bookingsService "github.com/evilazio/barbershop-booking/internal/service/bookings"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
	"github.com/evilazio/barbershop-booking/internal/service/expiration"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	"github.com/evilazio/barbershop-booking/internal/service/plans"
	"github.com/evilazio/barbershop-booking/internal/service/sessions"
	usersService "github.com/evilazio/barbershop-booking/internal/service/users"
	confirmPaymentUC "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
	createBookingUC "github.com/evilazio/barbershop-booking/internal/usecase/create_booking"
	createPlanPurchaseUC "github.com/evilazio/barbershop-booking/internal/usecase/create_plan_purchase"
	getDayScheduleUC "github.com/evilazio/barbershop-booking/internal/usecase/get_day_schedule"
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
	"github.com/evilazio/barbershop-booking/pkg/logger"
	"github.com/evilazio/barbershop-booking/pkg/metrics"
	"github.com/evilazio/barbershop-booking/pkg/txmanager"
)

const (
	defaultConfigPath = "config.toml"
	pixDescription    = "Agendamento Barbearia Evilazio"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting barbershop-booking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Доменные счетчики нужны use case'ам всегда, endpoint публикуется только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	purchaseRepository := planPurchaseRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Платежный провайдер
	var provider payments.Provider
	switch cfg.Payments.Provider {
	case "mercadopago":
		mpClient := mercadopago.NewClient(
			cfg.Payments.MercadoPago.BaseURL,
			cfg.Payments.MercadoPago.AccessToken,
			time.Duration(cfg.Payments.MercadoPago.Timeout)*time.Second,
			log,
		)
		provider = payments.NewMercadoPagoProvider(
			mpClient,
			cfg.Payments.MercadoPago.PayerEmail,
			cfg.Payments.MercadoPago.NotificationURL,
		)
	default:
		provider = payments.NewMockProvider(cfg.Payments.PixKey)
	}
	gateway := payments.NewGateway(provider, log)
	log.Info("Payment provider initialized: %s", gateway.ProviderName())

	// Хранилище сессий
	var sessionStore sessions.Store
	switch cfg.Sessions.Backend {
	case "redis":
		redisStore, err := sessions.NewRedisStore(context.Background(),
			cfg.Sessions.Redis.Addr, cfg.Sessions.Redis.Password, cfg.Sessions.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisStore.Close()
		sessionStore = redisStore
	default:
		sessionStore = sessions.NewMemoryStore()
	}
	log.Info("Session store initialized: backend=%s, ttl=%s", cfg.Sessions.Backend, cfg.Sessions.TTL())

	// Сервисы
	cal := calendar.NewCalendar(location, nil)
	ledger := plans.NewLedger(plans.Settings{
		CommonMonthlyFreeCuts: cfg.Plans.CommonMonthlyFreeCuts,
		CommonMonthlyPrice:    cfg.Plans.CommonMonthlyPrice,
		PlusMonthlyPrice:      cfg.Plans.PlusMonthlyPrice,
	})
	sessionSvc := sessions.NewService(sessionStore, cfg.Sessions.TTL(), nil, log)
	userSvc := usersService.NewService(userRepository, usersService.NewBcryptHasher(0), cal, cfg.Admin.Username, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, cal, log)
	expirationSvc := expiration.NewService(bookingRepository, purchaseRepository, metricsCollector, cal, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		ledger,
		gateway,
		cal,
		txMgr,
		metricsCollector,
		createBookingUC.Settings{
			PendingWindow:  cfg.Booking.PendingWindow(),
			PixDescription: pixDescription,
		},
		log,
	)
	createPlanPurchaseUseCase := createPlanPurchaseUC.NewUseCase(
		purchaseRepository,
		ledger,
		gateway,
		txMgr,
		cal,
		createPlanPurchaseUC.Settings{PendingWindow: cfg.Booking.PendingWindow()},
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		purchaseRepository,
		userRepository,
		ledger,
		cal,
		txMgr,
		metricsCollector,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(bookingRepository, expirationSvc, cal, log)

	// Администратор из конфигурации
	if err := userSvc.EnsureAdmin(context.Background(), cfg.Admin.DisplayName, cfg.Admin.Password); err != nil {
		log.Fatal("Failed to seed admin account: %v", err)
	}

	// Фоновые задачи
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go expirationSvc.Run(bgCtx, cfg.Booking.SweepInterval())
	go sessionSvc.RunSweeper(bgCtx, cfg.Sessions.SweepInterval())

	// Handlers
	register := registerHandler.NewHandler(userSvc, log)
	login := loginHandler.NewHandler(userSvc, sessionSvc, log)
	logout := logoutHandler.NewHandler(sessionSvc, log)
	getMe := getMeHandler.NewHandler(cal)
	updateProfile := updateProfileHandler.NewHandler(userSvc, log)
	getPlans := getPlansHandler.NewHandler(ledger, cal)
	createPlanPayment := createPlanPaymentHandler.NewHandler(createPlanPurchaseUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getAdminSchedule := getDayScheduleHandler.NewAdminHandler(getDayScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, cfg.Webhook.Token, log)
	mercadoPagoWebhook := mercadoPagoWebhookHandler.NewHandler(
		confirmPaymentUseCase, gateway, cfg.Payments.MercadoPago.WebhookSecret, log)

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", getServicesHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/register", register.Handle).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(login.Handle))).Methods(http.MethodPost)

	// Webhooks проверяют собственные секреты
	api.HandleFunc("/webhooks/payment", paymentWebhook.Handle).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/mercadopago", mercadoPagoWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessionSvc, userSvc, log))

	// --- Аккаунт ---
	protected.HandleFunc("/logout", logout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profile", updateProfile.Handle).Methods(http.MethodPut)

	// --- Планы ---
	protected.HandleFunc("/plans", getPlans.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/plans/create-payment", createPlanPayment.Handle).Methods(http.MethodPost)

	// --- Расписание и бронирования ---
	protected.HandleFunc("/schedule/day", getDaySchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/create-payment", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/schedule", getAdminSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

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

	stopBackground()
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
