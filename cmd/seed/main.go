package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"fintrack/internal/bootstrap"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
)

func main() {
	count := flag.Int("n", 60, "number of transactions to create")
	seed := flag.Int64("seed", 0, "faker seed, 0 for random")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open document store", zap.Error(err))
	}
	defer store.Close(ctx)

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(store, appLogger), appLogger)
	userService := service.NewUserService(repository.NewUserRepository(store, appLogger), appLogger)
	txService := service.NewTransactionService(repository.NewTransactionRepository(store, appLogger), appLogger)

	appLogger.Info("Starting database seeding...")

	for _, req := range demoCategories {
		req := req
		if _, err := categoryService.Get(ctx, req.ID); err == nil {
			continue
		}
		if _, err := categoryService.Create(ctx, &req); err != nil {
			appLogger.Fatal("Failed to create category", zap.String("id", req.ID), zap.Error(err))
		}
	}

	f := gofakeit.New(*seed)
	userReq := fakeUser(f)
	user, err := userService.Create(ctx, &userReq)
	if errors.Is(err, service.ErrUserExists) {
		user, err = userService.GetByEmail(ctx, userReq.Email)
	}
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}
	userReq.ID = user.ID

	if _, err := txService.CreateBatch(ctx, fakeTransactions(f, userReq, *count, time.Now())); err != nil {
		appLogger.Fatal("Failed to create transactions", zap.Error(err))
	}

	summary, err := txService.BalanceSummary(ctx, user.ID)
	if err != nil {
		appLogger.Fatal("Failed to compute summary", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.Int("transactions", *count),
		zap.String("balance", summary.TotalBalance.StringFixed(2)),
	)

	if cfg.JWT.Secret != "" {
		token, err := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer).GenerateToken(user.ID, user.Email, 24*time.Hour)
		if err != nil {
			appLogger.Error("Failed to mint demo token", zap.Error(err))
			return
		}
		appLogger.Info("Demo bearer token", zap.String("token", token))
	}
}
