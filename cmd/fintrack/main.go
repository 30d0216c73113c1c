package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/api"
	"fintrack/internal/api/handlers"
	"fintrack/internal/bootstrap"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title Fintrack API
// @version 1.0
// @description Personal finance tracker: transactions, categories, balance summaries and reports.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type Bearer followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting fintrack", zap.String("backend", cfg.Store.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open document store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			appLogger.Error("Failed to close document store", zap.Error(err))
		}
	}()

	// Repositories
	txRepo := repository.NewTransactionRepository(store, appLogger)
	categoryRepo := repository.NewCategoryRepository(store, appLogger)
	userRepo := repository.NewUserRepository(store, appLogger)

	// Services
	txService := service.NewTransactionService(txRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	userService := service.NewUserService(userRepo, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	app := api.SetupRouter(api.Handlers{
		Transaction: handlers.NewTransactionHandler(txService, appLogger),
		Summary:     handlers.NewSummaryHandler(txService, appLogger),
		Category:    handlers.NewCategoryHandler(categoryService, appLogger),
		User:        handlers.NewUserHandler(userService, appLogger),
		Health:      handlers.NewHealthHandler(store, appLogger),
	}, jwtManager, api.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AuthRequired: cfg.JWT.Required,
	}, appLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server")
		return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
