package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"go-ferre-inventory/internal/config"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/pkg/logger"
	"go-ferre-inventory/pkg/storage"
)

// reset-store wipes products, suppliers and sales from the configured store
// and writes the sample catalog again.
func main() {
	noSeed := flag.Bool("no-seed", false, "leave the store empty after the reset")
	flag.Parse()

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	// 2. Open Store
	store, err := storage.Open(cfg.StorageOptions(), zl)
	if err != nil {
		zl.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	repo := repository.New(store, repository.DefaultKeys(cfg.Store.KeyPrefix))

	// 3. Reset
	if err := repo.Reset(ctx); err != nil {
		zl.Fatal("reset failed", zap.Error(err))
	}
	zl.Info("store cleared", zap.Strings("keys", repo.Keys().All()))

	if *noSeed {
		return
	}

	// 4. Seed
	if _, err := repo.Bootstrap(ctx); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	zl.Info("sample catalog written",
		zap.Int("products", len(repository.DefaultProducts)),
		zap.Int("suppliers", len(repository.DefaultSuppliers)),
	)
}
