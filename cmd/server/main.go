package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/config"
	matchEvents "github.com/furrymatch/service-matching/internal/events"
	"github.com/furrymatch/service-matching/internal/handler"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/database"
	"github.com/furrymatch/service-matching/internal/platform/health"
	"github.com/furrymatch/service-matching/internal/platform/kafka"
	"github.com/furrymatch/service-matching/internal/platform/logger"
	"github.com/furrymatch/service-matching/internal/platform/metrics"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/realtime"
	"github.com/furrymatch/service-matching/internal/repository"
	"github.com/furrymatch/service-matching/internal/storage"
)

const serviceName = "service-matching"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:            cfg.DBConfig.Host,
		Port:            cfg.DBConfig.Port,
		User:            cfg.DBConfig.User,
		Password:        cfg.DBConfig.Password,
		DBName:          cfg.DBConfig.DBName,
		SSLMode:         cfg.DBConfig.SSLMode,
		MaxOpenConns:    cfg.DBConfig.MaxOpenConns,
		MaxIdleConns:    cfg.DBConfig.MaxIdleConns,
		ConnMaxLifetime: cfg.DBConfig.ConnMaxLifetime,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	// Run database migrations
	if err := database.RunMigrations(sqlDB, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize object storage
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	presigner, err := storage.NewS3Presigner(ctx, storage.S3Options{
		Bucket:          cfg.S3Config.Bucket,
		Region:          cfg.S3Config.Region,
		Endpoint:        cfg.S3Config.Endpoint,
		AccessKeyID:     cfg.S3Config.AccessKeyID,
		SecretAccessKey: cfg.S3Config.SecretAccessKey,
		TTL:             cfg.S3Config.PresignTTL,
	})
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// Initialize repositories
	ownerRepo := repository.NewGormOwnerRepository(db)
	petRepo := repository.NewGormPetRepository(db)
	breedRepo := repository.NewGormBreedRepository(db)
	criteriaRepo := repository.NewGormSearchCriteriaRepository(db)
	likeRepo := repository.NewGormLikeeRepository(db)
	matchRepo := repository.NewGormMatchRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	contractRepo := repository.NewGormContractRepository(db)
	photoRepo := repository.NewGormPhotoRepository(db)
	transactor := repository.NewGormTransactor(db)

	// Realtime chat rooms
	hub := realtime.NewHub(log)

	// Initialize application services
	ownerService := application.NewOwnerService(ownerRepo, petRepo, matchRepo, log)
	petService := application.NewPetService(petRepo, breedRepo, criteriaRepo, petRepo, ownerRepo, log)
	breedService := application.NewBreedService(breedRepo)
	likeService := application.NewLikeService(likeRepo, matchRepo, petRepo, transactor, kafkaProducer, log)
	matchService := application.NewMatchService(matchRepo, petRepo, log)
	chatService := application.NewChatService(chatRepo, matchRepo, petRepo, kafkaProducer, hub, log)
	contractService := application.NewContractService(contractRepo, matchRepo, petRepo, transactor, kafkaProducer, log)
	photoService := application.NewPhotoService(photoRepo, petRepo, presigner, log)
	adminService := application.NewAdminService(ownerRepo, petRepo, likeRepo, matchRepo, chatRepo, contractRepo)

	// Start match event consumer; it opens the chat thread of every new match
	groupID := cfg.KafkaConfig.GroupPrefix + "matching-service"
	matchConsumer := matchEvents.NewMatchEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		chatService,
		log,
	)
	defer func() { _ = matchConsumer.Close() }()

	go func() {
		log.Info("starting match event consumer")
		if err := matchConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("match event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	accountHandler := handler.NewAccountHandler(ownerService)
	petHandler := handler.NewPetHandler(petService)
	breedHandler := handler.NewBreedHandler(breedService)
	likeHandler := handler.NewLikeHandler(likeService)
	matchHandler := handler.NewMatchHandler(matchService, hub, log)
	chatHandler := handler.NewChatHandler(chatService)
	contractHandler := handler.NewContractHandler(contractService)
	photoHandler := handler.NewPhotoHandler(photoService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Setup Gin router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Register health check and metrics routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Register routes
	accountHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	petHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	breedHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	likeHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	matchHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	chatHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	contractHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	photoHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server. No write timeout: websocket connections are long lived.
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
	// Hijacked websocket connections are not tracked by the server.
	hub.Shutdown()

	log.Info(serviceName + " stopped")
}
