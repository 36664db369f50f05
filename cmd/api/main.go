package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/config"
	"go-ferre-inventory/internal/handler"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/session"
	"go-ferre-inventory/internal/ws"
	"go-ferre-inventory/pkg/clock"
	"go-ferre-inventory/pkg/logger"
	"go-ferre-inventory/pkg/storage"
)

func main() {
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

	repo := repository.New(store, repository.DefaultKeys(cfg.Store.KeyPrefix))

	// 3. Seed sample products and suppliers on first run
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seeded, err := repo.Bootstrap(ctx)
	if err != nil {
		zl.Fatal("bootstrap failed", zap.Error(err))
	}
	zl.Info("store ready",
		zap.String("driver", cfg.Store.Driver),
		zap.Bool("seeded_products", seeded.SeededProducts),
		zap.Bool("seeded_suppliers", seeded.SeededSuppliers),
		zap.Int("backfilled_ids", seeded.BackfilledIDs),
	)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zl.Named("ws"))
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	clk := clock.NewRealClock()
	sessions := session.NewRegistry(ws.SessionWiring(wsHub, repo), clk, cfg.Session.TTL)
	confirmer := handler.NewConfirmer(ctx, cfg.Session.ConfirmTimeout, wsHub, zl)

	authService := service.NewAuthService(sessions, cfg.Session.JWTSecret, cfg.Session.TTL, zl)
	catalogService := service.NewCatalogService(repo, wsHub, zl)
	supplierService := service.NewSupplierService(repo, wsHub, zl)
	saleService := service.NewSaleService(repo, clk, wsHub, zl)
	dashService := service.NewDashboardService(repo)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, confirmer, zl),
		View:      handler.NewViewHandler(zl),
		Inventory: handler.NewInventoryHandler(catalogService, confirmer, zl),
		Supplier:  handler.NewSupplierHandler(supplierService, confirmer, zl),
		Sale:      handler.NewSaleHandler(saleService, zl),
		Dashboard: handler.NewDashboardHandler(dashService, zl),
		Confirm:   handler.NewConfirmHandler(zl),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Ferretería Inventory v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	handler.SetupRoutes(app, handlers, authService, wsHub)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Panic("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	// open confirmations resolve to false; their follow-ups are skipped
	cancel()
	confirmer.Wait()

	zl.Info("server exited")
}
