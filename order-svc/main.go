package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"overcooked-tableside/config"
	"overcooked-tableside/logger"
	httpapi "overcooked-tableside/order-svc/internal/api/http"
	"overcooked-tableside/order-svc/internal/backplane"
	"overcooked-tableside/order-svc/internal/notify"
	"overcooked-tableside/order-svc/internal/service"
	"overcooked-tableside/order-svc/internal/storage"
)

const appName = "order-svc"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%s cannot load config: %v", appName, err)
	}

	lg := logger.New(appName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, closeStore := openStore(ctx, cfg, lg)
	defer closeStore()

	hub := notify.NewHub(cfg.SSEBuffer, lg)
	transport, closeBus := openBackplane(ctx, cfg, hub, lg)
	defer closeBus()

	broadcaster := notify.NewBroadcaster(transport, lg)
	defer broadcaster.Close()

	orders := service.NewOrderService(
		repository,
		service.NewOrderNumberGenerator(cfg.OrderNumberAttempts),
		broadcaster,
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		lg,
	)

	handler := httpapi.NewHandler(orders, transport, hub, lg)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handler, notify.NewSSEHandler(hub, lg), lg),
	}
	// Open event streams would otherwise hold Shutdown until its deadline.
	server.RegisterOnShutdown(hub.Close)

	go func() {
		lg.Info("order service starting", "addr", cfg.HTTPAddr, "store", cfg.Store, "backplane", cfg.Backplane, "instance_id", cfg.InstanceID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.AppConfig, lg *slog.Logger) (service.OrderRepository, func()) {
	if cfg.Store == config.StoreMemory {
		repo := storage.NewMemoryRepository()
		if cfg.SeedDemo {
			storage.SeedDemo(repo)
			lg.Info("seeded demo tables and menu")
		}
		return repo, func() {}
	}

	db := config.MustInitPostgres(cfg)
	repo := storage.NewPostgresRepository(db)
	if err := repo.Migrate(ctx, lg); err != nil {
		log.Fatalf("%s cannot migrate database: %v", appName, err)
	}
	return repo, func() { db.Close() }
}

// openBackplane picks the transport the broadcaster publishes through. With
// a bus configured, a relay goroutine feeds remote events into the local hub.
func openBackplane(ctx context.Context, cfg config.AppConfig, hub *notify.Hub, lg *slog.Logger) (notify.Transport, func()) {
	var (
		bus backplane.Bus
		err error
	)
	switch cfg.Backplane {
	case config.BackplaneMemory:
		return hub, func() {}
	case config.BackplaneRedis:
		bus = backplane.NewRedisBus(config.MustInitRedis(cfg), cfg.EventsChannel, lg)
	case config.BackplaneNATS:
		bus, err = backplane.NewNATSBus(cfg.NATSURL, cfg.EventsChannel, lg)
	case config.BackplaneAMQP:
		bus, err = backplane.NewAMQPBus(cfg.AMQPURL, cfg.EventsChannel, cfg.InstanceID, lg)
	case config.BackplaneKafka:
		bus = backplane.NewKafkaBus(config.NewKafkaWriter(cfg), config.NewKafkaReader(cfg), lg)
	}
	if err != nil {
		log.Fatalf("%s cannot connect to %s backplane: %v", appName, cfg.Backplane, err)
	}

	relay := backplane.NewRelay(bus, hub, cfg.InstanceID, lg)
	go func() {
		if err := relay.Run(ctx); err != nil {
			lg.Error("backplane consumer stopped", "backplane", cfg.Backplane, "error", err)
		}
	}()

	return relay, func() {
		if err := bus.Close(); err != nil {
			lg.Warn("failed to close backplane", "error", err)
		}
	}
}
