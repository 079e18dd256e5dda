// File: tutorly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorly/config"
	"tutorly/cron"
	"tutorly/database"
	availabilityRepo "tutorly/database/repository/availability"
	sessionRepo "tutorly/database/repository/session"
	"tutorly/handlers"
	"tutorly/routes"
	"tutorly/services/availability"
	"tutorly/services/sessions"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if err := config.Validate(config.AppConfig); err != nil {
		logger.Fatal("main: invalid configuration", zap.Error(err))
	}

	database.InitDB()
	utils.InitCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	avRepo := availabilityRepo.NewMongoAvailabilityRepo()
	sessRepo := sessionRepo.NewMongoSessionRepo()

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := avRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Warn("main: failed to ensure availability indexes", zap.Error(err))
	}
	if err := sessRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Warn("main: failed to ensure session indexes", zap.Error(err))
	}
	idxCancel()

	// services.
	availabilityService, err := availability.NewDefaultAvailabilityService(avRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	sessionService, err := sessions.NewDefaultSessionService(
		sessRepo,
		sessions.NewRedisPageCache(utils.GetCacheClient(), config.AppConfig.SessionCacheTTL),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewAvailabilityHandler(availabilityService, logger),
		handlers.NewSessionHandler(sessionService, logger),
		config.AppConfig.MaxRequestsPerMin,
	)
	routes.RegisterRoutes(router, handlerBundle)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(bgCtx, utils.GetCacheClient(), database.MongoClient)

	// Session reminders: the scanner enqueues, the worker delivers.
	reminderWorker := cron.InitReminderWorker(cron.LogDeliverer{Logger: logger}, logger)
	reminderQueue := asynq.NewClient(cron.RedisOpt())
	scanner := &cron.ReminderScanner{
		Sessions: sessRepo,
		Queue:    reminderQueue,
		LeadTime: config.AppConfig.ReminderLeadTime,
		Now:      time.Now,
		Logger:   logger,
	}
	scanner.Start(bgCtx, config.AppConfig.ReminderScanInterval)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopBackground()
	reminderWorker.Shutdown()
	if err := reminderQueue.Close(); err != nil {
		logger.Warn("main: failed to close reminder queue", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
