package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"betbroker/config"
	"betbroker/database"
	"betbroker/events"
	"betbroker/external"
	"betbroker/metrics"
	"betbroker/repository"
	"betbroker/server"
	"betbroker/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting betbroker...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	registerMetricSubscribers(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	auditLog := repository.NewAPICallLogRepository(db)
	apiClient := external.New(cfg.BetAPIURL, auditLog)

	bettingService := service.NewBettingService(uowFactory, apiClient)
	settlementService := service.NewSettlementService(uowFactory, apiClient)
	balanceService := service.NewBalanceService(uowFactory, apiClient)
	accountService := service.NewAccountService(uowFactory)

	handler := server.NewHandler(bettingService, settlementService, balanceService, accountService)
	srv := server.New(cfg, handler)

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"host": cfg.HTTPHost,
			"port": cfg.HTTPPort,
			"env":  cfg.Environment,
		}).Info("HTTP server listening")
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		db.Close()
		return fmt.Errorf("http server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	// Give in-flight audit writes and event handlers time to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// registerMetricSubscribers feeds business events into the counters
func registerMetricSubscribers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBetPlaced, func(ctx context.Context, event events.Event) {
		metrics.BetsPlaced.Inc()
	})
	bus.Subscribe(events.EventTypeBetSettled, func(ctx context.Context, event events.Event) {
		settled, ok := event.(events.BetSettledEvent)
		if !ok {
			return
		}
		outcome := "lost"
		if settled.Won {
			outcome = "won"
		}
		metrics.Settlements.WithLabelValues(outcome).Inc()
	})
}
