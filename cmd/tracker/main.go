package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"channel_ranker/internal/api"
	"channel_ranker/internal/cache"
	"channel_ranker/internal/config"
	"channel_ranker/internal/domain"
	"channel_ranker/internal/metrics"
	"channel_ranker/internal/publisher"
	"channel_ranker/internal/quota"
	"channel_ranker/internal/scheduler"
	"channel_ranker/internal/service"
	"channel_ranker/internal/source/youtube"
	"channel_ranker/internal/storage/postgres"
	"channel_ranker/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one collection over all channels and exit")
	modeFlag := flag.String("mode", "", "collection mode override: full or incremental")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if *modeFlag != "" {
		mode, err := domain.ParseMode(*modeFlag)
		if err != nil {
			logger.Error("invalid mode", "error", err)
			os.Exit(1)
		}
		cfg.Collection.Mode = mode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *once, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("tracker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("tracker stopped")
}

func run(ctx context.Context, cfg *config.Config, once bool, logger *slog.Logger) error {
	db, err := postgres.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("connected to database")

	if err := postgres.Migrate(db, migrations.FS); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	rankingCache := cache.New(ctx, cfg.Redis.URL, cfg.Redis.TTL, logger)
	defer rankingCache.Close()

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	budget := quota.NewBudget(cfg.Collection.QuotaBudget)

	source, err := youtube.NewClient(ctx, youtube.Config{
		APIKey:         cfg.YouTube.APIKey,
		Endpoint:       cfg.YouTube.Endpoint,
		Timeout:        cfg.YouTube.Timeout,
		RatePerSecond:  cfg.YouTube.RatePerSecond,
		MaxAttempts:    cfg.YouTube.Retry.MaxAttempts,
		InitialBackoff: cfg.YouTube.Retry.InitialBackoff,
		MaxBackoff:     cfg.YouTube.Retry.MaxBackoff,
	}, budget, logger)
	if err != nil {
		return err
	}

	channelStore := postgres.NewChannelStore(db)
	videoStore := postgres.NewVideoStore(db)
	snapshotStore := postgres.NewSnapshotStore(db)
	stateStore := postgres.NewCollectionStateStore(db)
	leaseStore := postgres.NewLeaseStore(db)

	collector := service.NewCollector(
		source,
		channelStore,
		videoStore,
		snapshotStore,
		stateStore,
		leaseStore,
		pub,
		rankingCache,
		m,
		logger,
		cfg.Collection,
		holderID(),
	)
	runner := service.NewRunner(collector, channelStore, budget, m, logger, cfg.Collection)

	sched := scheduler.NewScheduler(runner, scheduler.Config{
		Schedule:   cfg.Collection.Schedule,
		Mode:       cfg.Collection.Mode,
		RunTimeout: cfg.Collection.RunTimeout,
		RunOnStart: cfg.Collection.RunOnStart,
	}, logger)

	if once {
		stats := sched.RunOnce(ctx)
		if stats == nil {
			return errors.New("collection run failed")
		}
		logger.Info("run finished",
			"succeeded", stats.Succeeded,
			"failed", stats.Failed,
			"deferred", stats.Deferred,
			"quota_used", stats.QuotaUsed,
		)
		return nil
	}

	rankings := service.NewRankingService(channelStore, videoStore, snapshotStore, rankingCache, logger)
	audits := service.NewAuditService(source, channelStore, videoStore, snapshotStore, logger)

	handler := api.NewHandler(rankings, audits, collector, map[string]api.HealthCheck{
		"database": db.PingContext,
		"cache":    rankingCache.Ping,
	}, cfg.Collection.RunTimeout, logger)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.NewRouter(handler, m, registry, logger),
	}

	logger.Info("starting channel tracker",
		"addr", cfg.HTTP.Addr,
		"schedule", cfg.Collection.Schedule,
		"mode", cfg.Collection.Mode,
		"parallelism", cfg.Collection.Parallelism,
		"seeds", len(cfg.Collection.Channels),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return sched.Start(gctx)
	})

	return g.Wait()
}

func holderID() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
