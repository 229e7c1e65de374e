// Package server boots the cozyloom HTTP application: config, logging,
// database, cache, queue workers, event listeners and the router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/cozyloom/app/jobs"
	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/routes"
	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/config"
	"github.com/shashiranjanraj/cozyloom/pkg/cache"
	"github.com/shashiranjanraj/cozyloom/pkg/database"
	"github.com/shashiranjanraj/cozyloom/pkg/event"
	"github.com/shashiranjanraj/cozyloom/pkg/logger"
	"github.com/shashiranjanraj/cozyloom/pkg/metrics"
	"github.com/shashiranjanraj/cozyloom/pkg/middleware"
	"github.com/shashiranjanraj/cozyloom/pkg/migration"
	"github.com/shashiranjanraj/cozyloom/pkg/queue"
	"github.com/shashiranjanraj/cozyloom/pkg/reqid"
	"github.com/shashiranjanraj/cozyloom/pkg/router"
	"gorm.io/gorm"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Setup()

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("server: connect database: %w", err)
	}
	if err := migration.New(db).Run(); err != nil {
		return fmt.Errorf("server: run migrations: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	setupQueue(ctx, db)
	registerListeners()

	catalog := services.NewCatalogService(db)
	ledger := services.NewLedgerService(db, catalog)

	r := buildRouter(catalog, ledger)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cozyloom running", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildRouter assembles the middleware stack and mounts all routes.
func buildRouter(catalog *services.CatalogService, ledger *services.LedgerService) *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler())
	routes.RegisterAPI(r, catalog, ledger)
	return r
}

// setupQueue wires the queue driver, failed-job persistence and workers.
// Redis is preferred when reachable so alert jobs survive restarts;
// otherwise the in-memory driver keeps the app functional.
func setupQueue(ctx context.Context, db *gorm.DB) {
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(db)
	jobs.Register()
	queue.StartWorkers(ctx, config.QueueWorkers())
}

// registerListeners subscribes the application's event handlers.
func registerListeners() {
	event.Listen("order.created", func(payload interface{}) {
		if o, ok := payload.(models.DistributorOrder); ok {
			logger.Info("order created",
				"order_id", o.ID, "blanket_id", o.BlanketModelID,
				"quantity", o.Quantity, "status", o.Status)
		}
	})
	event.Listen("order.fulfilled", func(payload interface{}) {
		if o, ok := payload.(models.DistributorOrder); ok {
			logger.Info("order fulfilled", "order_id", o.ID, "blanket_id", o.BlanketModelID)
		}
	})
	event.Listen("order.cancelled", func(payload interface{}) {
		if o, ok := payload.(models.DistributorOrder); ok {
			logger.Info("order cancelled", "order_id", o.ID, "blanket_id", o.BlanketModelID)
		}
	})
	event.Listen("stock.low", func(payload interface{}) {
		b, ok := payload.(models.Blanket)
		if !ok {
			return
		}
		err := queue.Dispatch(&jobs.LowStockAlertJob{
			BlanketID:    b.ID,
			ModelName:    b.ModelName,
			CurrentStock: b.CurrentStock,
			Threshold:    config.LowStockThreshold(),
		})
		if err != nil {
			logger.Error("dispatch low stock alert", "blanket_id", b.ID, "error", err)
		}
	})
}
