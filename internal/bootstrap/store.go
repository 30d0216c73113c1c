package bootstrap

import (
	"context"
	"fmt"

	"fintrack/internal/repository"
	"fintrack/pkg/config"
	"fintrack/pkg/mongodb"
	"fintrack/pkg/postgres"

	"go.uber.org/zap"
)

// OpenStore connects the document store selected by cfg.Store.Backend. The
// caller owns the returned store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.DocumentStore, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		connectCtx := ctx
		if cfg.Mongo.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			connectCtx, cancel = context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
			defer cancel()
		}

		client, err := mongodb.NewClient(connectCtx, &cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		store := repository.NewMongoStore(client, cfg.Mongo.Database, logger)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil

	case config.BackendPostgres:
		if cfg.Store.Migrate {
			if err := postgres.RunMigrations(&cfg.Database, logger); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresStore(pool, logger), nil

	case config.BackendMemory:
		logger.Warn("Using in-memory store, data is lost on exit")
		return repository.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
