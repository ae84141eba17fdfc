package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/cityverse/backend/internal/api/http"
	"github.com/cityverse/backend/internal/cache"
	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/internal/queue/asynqserver"
	queueClient "github.com/cityverse/backend/internal/queue/client"
	"github.com/cityverse/backend/internal/repository"
	"github.com/cityverse/backend/internal/server"
	"github.com/cityverse/backend/internal/service"
	"github.com/cityverse/backend/internal/store"
	"github.com/cityverse/backend/internal/uploader"
	"github.com/cityverse/backend/pkg/auth"
	"github.com/cityverse/backend/pkg/logger"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.Setup(cfg.Env, cfg.LogLevel)

	appLogger.Info("starting catalog api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Redis backs the raw collection cache and the refresh queue
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	collectionCache := cache.NewCollection(redisClient, cfg.Catalog.CacheTTL)

	// Record store client; the auth collaborator hands it a credential to
	// attach to every request
	storeClient := store.NewClient(cfg.Store, store.StaticToken(cfg.Store.AuthToken))

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	uploaderClient := uploader.NewClient(cfg.Uploader)

	// Queue client for post-mutation snapshot refreshes
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	scheduler := queueClient.NewScheduler(asynqClient)
	defer func() {
		if err := scheduler.Close(); err != nil {
			appLogger.Error("error when closing queue client", zap.Error(err))
		}
	}()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(storeClient, collectionCache)
	services := service.NewServices(service.Deps{
		Config:    cfg,
		Repos:     repos,
		Scheduler: scheduler,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, uploaderClient)

	// Background queue server
	queueSrv, queueMux := asynqserver.New(cfg.Cache, services)
	go func() {
		if err := queueSrv.Run(queueMux); err != nil {
			appLogger.Error("error occurred while running queue server", zap.Error(err))
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	queueSrv.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
