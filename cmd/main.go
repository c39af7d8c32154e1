package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkAvailabilityHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/check_availability"
	createBoatHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/create_boat"
	createBookingHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/get_available_slots"
	getBoatHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/get_boat"
	getBoatBookingsHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/get_boat_bookings"
	getBookingHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/get_user_bookings"
	listBoatsHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/list_boats"
	paymentCallbackHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/payment_callback"
	quotePriceHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/quote_price"
	removeSpecialPricingHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/remove_special_pricing"
	setSpecialPricingHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/set_special_pricing"
	updateBoatHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/update_boat"
	updateBookingStatusHandler "github.com/m04kA/charter-booking-service/internal/api/handlers/update_booking_status"
	"github.com/m04kA/charter-booking-service/internal/api/middleware"
	"github.com/m04kA/charter-booking-service/internal/config"
	"github.com/m04kA/charter-booking-service/internal/infra/cache"
	"github.com/m04kA/charter-booking-service/internal/integrations/calendar"
	"github.com/m04kA/charter-booking-service/internal/integrations/payment"
	"github.com/m04kA/charter-booking-service/internal/scheduler"
	boatsService "github.com/m04kA/charter-booking-service/internal/service/boats"
	bookingsService "github.com/m04kA/charter-booking-service/internal/service/bookings"
	"github.com/m04kA/charter-booking-service/internal/service/busytime"
	createBookingUC "github.com/m04kA/charter-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/charter-booking-service/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/charter-booking-service/internal/usecase/quote_price"
	"github.com/m04kA/charter-booking-service/pkg/logger"
	"github.com/m04kA/charter-booking-service/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

	log.Info("Starting charter-booking-service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены); nil-метрики ничего не пишут
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL или память
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()
	log.Info("Storage initialized (driver=%s)", cfg.Storage.Driver)

	// Интеграции. Выключенный клиент остаётся nil-интерфейсом
	var (
		busyCalendar  busytime.CalendarClient
		eventCalendar bookingsService.CalendarClient
		busyCache     busytime.Cache
		paymentClient createBookingUC.PaymentClient
		callbackCheck paymentCallbackHandler.CallbackVerifier
	)

	if cfg.Calendar.Enabled {
		calendarClient := calendar.NewClient(
			cfg.Calendar.URL,
			cfg.Calendar.AccessToken,
			time.Duration(cfg.Calendar.Timeout)*time.Second,
			log,
		)
		busyCalendar, eventCalendar = calendarClient, calendarClient
		log.Info("Calendar client initialized (url=%s, timeout=%ds)", cfg.Calendar.URL, cfg.Calendar.Timeout)
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// Без кэша календарь всё равно работает, теряется только резервный ответ
			log.Error("Redis unavailable, busy time cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			busyCache = cache.NewBusyPeriodCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
			log.Info("Busy time cache initialized (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	if cfg.Payment.Enabled {
		client := payment.NewClient(
			cfg.Payment.URL,
			cfg.Payment.SecretKey,
			cfg.Payment.CallbackToken,
			time.Duration(cfg.Payment.Timeout)*time.Second,
			log,
		)
		paymentClient, callbackCheck = client, client
		log.Info("Payment client initialized (url=%s, timeout=%ds)", cfg.Payment.URL, cfg.Payment.Timeout)
	} else {
		log.Warn("Payment processor disabled, card data is accepted without tokenization")
	}

	// Инициализируем сервисы
	busyTimeSvc := busytime.NewService(busyCalendar, busyCache, location, metricsCollector, log)
	boatSvc := boatsService.NewService(store.boats, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.boats,
		busyTimeSvc,
		eventCalendar,
		store.tx,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.boats,
		store.bookings,
		busyTimeSvc,
		metricsCollector,
		location,
		cfg.Booking.Currency,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(store.boats, cfg.Booking.Currency, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.boats,
		busyTimeSvc,
		paymentClient,
		store.tx,
		metricsCollector,
		location,
		cfg.Booking.Currency,
		log,
	)

	// Инициализируем handlers
	listBoats := listBoatsHandler.NewHandler(boatSvc, log)
	getBoat := getBoatHandler.NewHandler(boatSvc, log)
	createBoat := createBoatHandler.NewHandler(boatSvc, log)
	updateBoat := updateBoatHandler.NewHandler(boatSvc, log)
	setSpecialPricing := setSpecialPricingHandler.NewHandler(boatSvc, log)
	removeSpecialPricing := removeSpecialPricingHandler.NewHandler(boatSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBoatBookings := getBoatBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог лодок
	api.HandleFunc("/boats", listBoats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/boats/{boatId}", getBoat.Handle).Methods(http.MethodGet)

	// Свободные слоты, расчёт стоимости и проверка интервала
	api.HandleFunc("/boats/{boatId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/boats/{boatId}/quote", quotePrice.Handle).Methods(http.MethodPost)
	api.HandleFunc("/boats/{boatId}/availability-check", checkAvailability.Handle).Methods(http.MethodPost)

	// Уведомления платёжного процессора (подписаны X-Callback-Token)
	if callbackCheck != nil {
		paymentCallback := paymentCallbackHandler.NewHandler(bookingSvc, callbackCheck, log)
		api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodPost)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Лодки (для владельцев) ---
	protected.HandleFunc("/boats", createBoat.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/boats/{boatId}", updateBoat.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/boats/{boatId}/special-pricing/{date}", setSpecialPricing.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/boats/{boatId}/special-pricing/{date}", removeSpecialPricing.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/boats/{boatId}/bookings", getBoatBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Фоновое отклонение просроченных заявок
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if cfg.Booking.ExpiryInterval > 0 {
		expirer := scheduler.New(bookingSvc, time.Duration(cfg.Booking.ExpiryInterval)*time.Second, log)
		go expirer.Start(schedulerCtx)
		log.Info("Expiry scheduler started (interval=%ds)", cfg.Booking.ExpiryInterval)
	}

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

	stopScheduler()
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
