package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/cache"
	"github.com/sales-cockpit/assessment-service/internal/config"
	"github.com/sales-cockpit/assessment-service/internal/handlers"
	"github.com/sales-cockpit/assessment-service/internal/middleware"
	"github.com/sales-cockpit/assessment-service/internal/repositories/postgres"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
	"github.com/sales-cockpit/assessment-service/internal/validator"
	"github.com/sales-cockpit/assessment-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	cacheService := cache.NewRedisCache(redisClient, logger)
	repo := postgres.NewRepository(db, cacheService)

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()
	structureService := services.NewStructureService(repo, publisher, slogLogger, v)
	assessmentService := services.NewAssessmentService(repo, publisher, slogLogger, v)
	exportService := services.NewExportService(repo, assessmentService, slogLogger)
	notificationService := services.NewNotificationService(repo, slogLogger)

	casdoorClient := middleware.NewCasdoorClient(
		cfg.Casdoor.Endpoint,
		cfg.Casdoor.ClientID,
		cfg.Casdoor.ClientSecret,
		cfg.Casdoor.Certificate,
		cfg.Casdoor.Organization,
		cfg.Casdoor.Application,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(structureService, assessmentService, exportService, notificationService, logger)
	handlerManager.SetupRoutes(router, middleware.Auth(casdoorClient, logger))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting assessment service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
