package main

import (
	"context"
	"fmt"
	"os"

	"github.com/angelmondragon/storefront-state/internal/cart"
	"github.com/angelmondragon/storefront-state/internal/persist"
	"github.com/angelmondragon/storefront-state/internal/wishlist"
	"github.com/angelmondragon/storefront-state/pkg/config"
	"github.com/angelmondragon/storefront-state/pkg/instance"
	"github.com/angelmondragon/storefront-state/pkg/logger"
	"github.com/angelmondragon/storefront-state/pkg/metrics"
	"github.com/angelmondragon/storefront-state/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Inspects the persisted storefront state: boots the configured adapter,
// hydrates both controllers, and reports what survived from the last session.
func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithSessionID(context.Background(), instance.SessionID())

	adapter, cleanup, err := buildAdapter(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage adapter", err)
		os.Exit(1)
	}
	defer cleanup()

	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)

	cartCtrl, err := cart.NewController(cart.ControllerParams{
		Adapter: adapter,
		Logger:  logg,
		Metrics: storeMetrics,
		Slot:    cfg.Storage.CartSlot,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart controller", err)
		os.Exit(1)
	}

	wishlistCtrl, err := wishlist.NewController(wishlist.ControllerParams{
		Adapter: adapter,
		Logger:  logg,
		Metrics: storeMetrics,
		Slot:    cfg.Storage.WishlistSlot,
	})
	if err != nil {
		logg.Error(ctx, "failed to create wishlist controller", err)
		os.Exit(1)
	}

	cartCtrl.Hydrate(ctx)
	wishlistCtrl.Hydrate(ctx)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"backend":        cfg.Storage.Kind(),
		"cart_items":     cartCtrl.ItemCount(),
		"cart_total":     cartCtrl.Total().String(),
		"wishlist_items": wishlistCtrl.ItemCount(),
	}), "storefront state hydrated")
}

func buildAdapter(ctx context.Context, cfg *config.Config) (persist.Adapter, func(), error) {
	noop := func() {}
	switch cfg.Storage.Kind() {
	case config.BackendMemory:
		return persist.NewMemory(), noop, nil

	case config.BackendSQLite:
		conn, err := gorm.Open(sqlite.Open(cfg.SQLite.Path), &gorm.Config{})
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite at %s: %w", cfg.SQLite.Path, err)
		}
		adapter, err := persist.NewGorm(conn)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if sqlDB, err := conn.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return adapter, cleanup, nil

	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis, cfg.Storage.Namespace)
		if err != nil {
			return nil, noop, err
		}
		adapter, err := persist.NewRedis(client)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return adapter, func() { _ = client.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
