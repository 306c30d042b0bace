package main

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/delivery/http/routers"
	"intake-service/internal/app/drivers/database"
	"intake-service/internal/app/drivers/logger"
	"intake-service/internal/app/drivers/messaging"
	"intake-service/internal/app/drivers/storage"
	"intake-service/internal/app/services/core/orchestrator"
	"intake-service/internal/app/services/core/reports"
	"intake-service/internal/app/services/core/risk"
	"intake-service/internal/app/services/core/screeners"
	"intake-service/internal/app/services/core/sessions"
	"intake-service/internal/app/services/core/tagger"
	"intake-service/internal/app/services/shared/archive"
	"intake-service/internal/app/services/shared/llm"
	"intake-service/internal/app/services/shared/locker"
	"intake-service/internal/app/services/shared/redis"
	"intake-service/internal/app/services/shared/reviewqueue"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	if err := bootstrapingTheApp(sweeperCtx, config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}); err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap config.Bootstrap) error {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	modelService := llm.NewOpenAIModelService(bootstrap.InternalConfig, bootstrap.Logger)

	reviewQueueService, err := reviewqueue.NewReviewQueueService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Intake.ReviewQueueName,
	)
	if err != nil {
		return err
	}

	archiveService := archive.NewMinioReportArchive(
		bootstrap.Minio,
		bootstrap.Logger,
		bootstrap.DriverConfig.Minio.BucketName,
	)

	// Screening core
	screenerRegistry, err := screeners.NewDefaultScreenerRegistry()
	if err != nil {
		return err
	}
	riskEngine, err := risk.NewRiskEngine(screenerRegistry)
	if err != nil {
		return err
	}
	symptomTagger := tagger.NewLexicalTagger()

	conversationOrchestrator := orchestrator.NewConversationOrchestrator(
		bootstrap.Logger,
		screenerRegistry,
		riskEngine,
		symptomTagger,
		modelService,
		bootstrap.InternalConfig,
	)

	// Reports
	reportUsecase := reports.NewReportUsecase(
		bootstrap.Logger,
		modelService,
		reviewQueueService,
		archiveService,
		bootstrap.InternalConfig,
	)

	// Sessions
	sessionMongoRepository := sessions.NewSessionMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	intakeUsecase := sessions.NewIntakeUsecase(
		bootstrap.Logger,
		sessionMongoRepository,
		conversationOrchestrator,
		reportUsecase,
		redisRepository,
		lockerService,
		bootstrap.InternalConfig,
	)
	intakeController := controllers.NewIntakeController(bootstrap.Logger, intakeUsecase)

	sessions.StartExpirySweeper(
		ctx,
		bootstrap.Logger,
		intakeUsecase,
		time.Duration(bootstrap.InternalConfig.Intake.SweepIntervalInSeconds)*time.Second,
	)

	// Middlewares and routes
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, intakeController)

	return nil
}
