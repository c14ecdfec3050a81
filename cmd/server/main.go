package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightbook-service/internal/infrastructure/config"
	"flightbook-service/internal/infrastructure/oauth"
	"flightbook-service/internal/infrastructure/persistence"
	"flightbook-service/internal/interface/amadeus"
	"flightbook-service/internal/interface/repository"
	"flightbook-service/internal/interface/rest"
	"flightbook-service/internal/usecase"
	"flightbook-service/pkg/currency"
	"flightbook-service/pkg/logger"
	"flightbook-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flightbook Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := persistence.NewPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.Migrate(gormDB); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up Redis connection
	redisClient, err := persistence.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}

	// Set up metrics
	m := metrics.NewMetrics("flightbook")

	// Set up repositories
	searchRepo := repository.NewGormSearchLogRepository(gormDB)
	selectionRepo := repository.NewGormSelectionRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	sessionRepo := repository.NewRedisSessionRepository(redisClient, cfg.SessionTTL, log)
	archiveRepo := repository.NewMongoArchiveRepository(mongoDB)

	// Set up Amadeus OAuth and client
	tokens := oauth.NewTokenManager(
		cfg.AmadeusBaseURL,
		cfg.AmadeusClientID,
		cfg.AmadeusClientSecret,
		cfg.AmadeusAccessToken,
		log,
	)
	client := amadeus.NewClient(cfg.AmadeusBaseURL, tokens, cfg.ProviderTimeout, cfg.ProviderRateLimit, m, log)

	// Set up currency conversion and usecase
	converter := currency.NewConverter(cfg.DisplayCurrency, cfg.FxRateURL, log)
	normalizer := usecase.NewOfferNormalizer(converter, log)
	flightUC := usecase.NewFlightUsecase(
		client,
		searchRepo,
		selectionRepo,
		bookingRepo,
		sessionRepo,
		archiveRepo,
		normalizer,
		m,
		log,
	)

	// Set up HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	rest.NewHandler(flightUC, sessionRepo, log).Register(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"version": cfg.AppVersion,
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", "error", err)
	}

	log.Info("Flightbook Service stopped")
}
