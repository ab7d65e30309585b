package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/animalmarket/listing-service/internal/adapter/httpapi"
	"github.com/animalmarket/listing-service/internal/adapter/messaging/nats"
	"github.com/animalmarket/listing-service/internal/adapter/repository/cache"
	"github.com/animalmarket/listing-service/internal/adapter/repository/memory"
	"github.com/animalmarket/listing-service/internal/adapter/repository/mongodb"
	"github.com/animalmarket/listing-service/internal/adapter/storage/s3"
	"github.com/animalmarket/listing-service/internal/config"
	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/listing/usecase"
	"github.com/animalmarket/listing-service/internal/mailer"
	"github.com/animalmarket/listing-service/internal/platform/logger"
	"github.com/animalmarket/listing-service/internal/platform/tracer"
	"github.com/animalmarket/listing-service/internal/session"
)

// userStore is what both repository flavors provide for identity handling.
type userStore interface {
	session.IdentityProvider
	httpapi.Registrar
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if cfg.TracingOn {
		tp, err := tracer.Init(ctx, cfg.OTLPEndpoint)
		if err != nil {
			appLogger.Fatal("failed to initialize tracer", "error", err.Error())
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				appLogger.Error("tracer shutdown failed", "error", err.Error())
			}
		}()
	}

	var (
		listingRepo  domain.ListingRepository
		favoriteRepo domain.FavoriteRepository
		users        userStore
		listingCache usecase.ListingCache
		tokenCache   session.TokenCache
	)

	switch cfg.StoreBackend {
	case "mongo":
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			appLogger.Fatal("failed to connect to MongoDB", "uri", cfg.MongoURI, "error", err.Error())
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		db := mongoClient.Database(cfg.MongoDB)

		listingRepo = mongodb.NewListingRepository(db, appLogger)
		favoriteRepo = mongodb.NewFavoriteRepository(db, appLogger)
		users = mongodb.NewUserRepository(db, appLogger)

		redisClient, err := cache.NewClient(ctx, cfg.RedisAddress)
		if err != nil {
			appLogger.Warn("redis unavailable, running without caches", "address", cfg.RedisAddress, "error", err.Error())
		} else {
			listingCache = cache.NewListingCache(redisClient)
			tokenCache = cache.NewTokenCache(redisClient)
		}
	case "memory":
		appLogger.Info("using in-memory store; listings will not survive a restart")
		listingRepo = memory.NewListingRepository()
		favoriteRepo = memory.NewFavoriteRepository()
		users = memory.NewUserRepository()
	default:
		appLogger.Fatal("unknown store backend", "backend", cfg.StoreBackend)
	}

	var publisher usecase.Publisher
	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		appLogger.Warn("NATS unavailable, events disabled", "url", cfg.NATSURL, "error", err.Error())
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	var listingMailer usecase.Mailer
	if cfg.SMTPEmail != "" {
		listingMailer = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	var photoUC *usecase.PhotoUsecase
	storage, err := s3.NewStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Warn("photo storage unavailable, uploads disabled", "endpoint", cfg.MinIOEndpoint, "error", err.Error())
	} else {
		photoUC = usecase.NewPhotoUsecase(storage, appLogger)
	}

	gateway := session.NewGateway(users, tokenCache, cfg.JWTSecret, appLogger)
	listingUC := usecase.NewListingUsecase(listingRepo, gateway, listingCache, publisher, listingMailer, appLogger)
	feedUC := usecase.NewFeedUsecase(listingRepo, favoriteRepo, appLogger)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, listingRepo, gateway, appLogger)

	if cfg.SeedSamples {
		if err := seedSamples(ctx, listingRepo, users); err != nil {
			appLogger.Warn("failed to seed sample data", "error", err.Error())
		} else {
			appLogger.Info("sample data seeded")
		}
	}

	handler := httpapi.NewHandler(gateway, users, listingUC, feedUC, favoriteUC, photoUC, appLogger)
	router := httpapi.NewRouter(handler, gateway, appLogger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting HTTP server", "addr", server.Addr, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err.Error())
	}
}
