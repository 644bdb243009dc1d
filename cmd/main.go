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

	bookTourHandler "github.com/max-tl-2000/red-sub012/internal/api/handlers/book_tour"
	cancelTourHandler "github.com/max-tl-2000/red-sub012/internal/api/handlers/cancel_tour"
	getAvailableSlotsHandler "github.com/max-tl-2000/red-sub012/internal/api/handlers/get_available_slots"
	"github.com/max-tl-2000/red-sub012/internal/api/middleware"
	"github.com/max-tl-2000/red-sub012/internal/config"
	"github.com/max-tl-2000/red-sub012/internal/infra/events"
	appointmentRepo "github.com/max-tl-2000/red-sub012/internal/infra/storage/appointment"
	calendarRepo "github.com/max-tl-2000/red-sub012/internal/infra/storage/calendar"
	teamRepo "github.com/max-tl-2000/red-sub012/internal/infra/storage/team"
	partyServiceClient "github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
	propertyServiceClient "github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
	availabilityService "github.com/max-tl-2000/red-sub012/internal/service/availability"
	candidatesService "github.com/max-tl-2000/red-sub012/internal/service/candidates"
	routingService "github.com/max-tl-2000/red-sub012/internal/service/routing"
	bookTourUC "github.com/max-tl-2000/red-sub012/internal/usecase/book_tour"
	cancelTourUC "github.com/max-tl-2000/red-sub012/internal/usecase/cancel_tour"
	getAvailableSlotsUC "github.com/max-tl-2000/red-sub012/internal/usecase/get_available_slots"
	"github.com/max-tl-2000/red-sub012/pkg/dbmetrics"
	"github.com/max-tl-2000/red-sub012/pkg/logger"
	"github.com/max-tl-2000/red-sub012/pkg/metrics"
	"github.com/max-tl-2000/red-sub012/pkg/simpletxmanager"
	"github.com/max-tl-2000/red-sub012/pkg/txmanager"
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

	log.Info("Starting self-service tour booking service...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Кеш ответов propertyservice поверх Redis (если включен)
	var propertyCache propertyServiceClient.Cache
	var redisClient *redis.Client

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		propertyCache = propertyServiceClient.NewRedisCache(
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			log,
		)
		log.Info("Redis cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Инициализируем интеграционных клиентов
	partyClient := partyServiceClient.NewClient(
		cfg.PartyService.URL,
		time.Duration(cfg.PartyService.Timeout)*time.Second,
		log,
	)
	propertyClient := propertyServiceClient.NewClient(
		cfg.PropertyService.URL,
		time.Duration(cfg.PropertyService.Timeout)*time.Second,
		propertyCache,
		log,
	)
	log.Info("Integration clients initialized (PartyService=%s, PropertyService=%s)",
		cfg.PartyService.URL, cfg.PropertyService.URL)

	// Публикация доменных событий в Kafka (если включена)
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (topic=%s)", cfg.Kafka.Topic)
	}

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointments *appointmentRepo.Repository
		calendars    *calendarRepo.Repository
		teams        *teamRepo.Repository
		txMgr        TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointments = appointmentRepo.NewRepository(wrappedDB)
		calendars = calendarRepo.NewRepository(wrappedDB)
		teams = teamRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointments = appointmentRepo.NewRepository(db)
		calendars = calendarRepo.NewRepository(db)
		teams = teamRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(appointments, calendars, log)
	poolResolver := candidatesService.NewPoolResolver(teams, log)
	selector := candidatesService.NewSelector(log)
	routingSvc := routingService.NewService(teams, log)

	// Инициализируем use cases
	bookTourUseCase := bookTourUC.NewUseCase(
		appointments,
		calendars,
		availabilitySvc,
		poolResolver,
		selector,
		routingSvc,
		partyClient,
		propertyClient,
		publisher,
		txMgr,
		log,
	)

	cancelTourUseCase := cancelTourUC.NewUseCase(
		appointments,
		partyClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		poolResolver,
		propertyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	bookTour := bookTourHandler.NewHandler(bookTourUseCase, log)
	cancelTour := cancelTourHandler.NewHandler(cancelTourUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Публичные маршруты веб-формы самозаписи
	// Запросы принимаются только с разрешенных сайтов
	selfService := r.PathPrefix("/api/v1/self-service").Subrouter()
	selfService.Use(middleware.ValidateReferrer(cfg.Server.AllowedOrigins, log))

	selfService.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	selfService.HandleFunc("/tours", bookTour.Handle).Methods(http.MethodPost)
	selfService.HandleFunc("/tours/{appointmentId}/cancel", cancelTour.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
