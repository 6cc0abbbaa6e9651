package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-desk/internal/api/http"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/internal/store"
	"github.com/spec-kit/support-desk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, closeBackend := openBackend(ctx, cfg, logger)
	defer closeBackend()
	stores := store.New(backend)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var exporter *events.KafkaExporter
	if cfg.Events.Enabled() {
		exporter = events.NewKafkaExporter(cfg.Events, logger)
		defer exporter.Close() //nolint:errcheck
		logger.Info("exporting events to kafka",
			zap.Strings("brokers", cfg.Events.KafkaBrokers),
			zap.String("topic", cfg.Events.KafkaTopic))
	}
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger), exporter)

	deps := service.Dependencies{
		Stores:     stores,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Validator:  service.NewFormValidator(),
		Logger:     logger,
	}
	ticketService := service.NewTicketService(deps)
	appointmentService := service.NewAppointmentService(deps)
	chatService := service.NewChatService(deps, ticketService, appointmentService)

	app := httptransport.NewApp(httptransport.AppDependencies{
		Config:       cfg,
		Logger:       logger,
		Metrics:      metrics,
		Store:        stores,
		Chat:         chatService,
		Tickets:      ticketService,
		Appointments: appointmentService,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openBackend connects the configured store driver and returns its cleanup.
func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Backend, func()) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		redis := persistence.NewRedis(cfg.Redis, logger)
		return redis, redis.Close
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		return pg, pg.Close
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryBackend(), func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
