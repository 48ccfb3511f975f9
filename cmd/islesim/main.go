package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/islesim/internal/ai"
	"github.com/udisondev/islesim/internal/cache"
	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/db"
	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/metrics"
	"github.com/udisondev/islesim/internal/sim"
	"github.com/udisondev/islesim/internal/world"
)

const ConfigPath = "config/islesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ISLESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("islesim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Rows, cfg.Grid.Cols),
		"storage", cfg.Storage.Driver,
		"seed", cfg.Seed)

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	publishers := event.Multi{event.NewLogPublisher(slog.Default())}
	if cfg.NATS.Enabled() {
		bus, err := event.DialNATS(cfg.NATS.URL, cfg.NATS.SubjectPrefix, cfg.NATS.Source, cfg.NATS.FlushTimeout)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer func() {
			if err := bus.Close(); err != nil {
				slog.Warn("closing nats publisher", "error", err)
			}
		}()
		publishers = append(publishers, bus)
		slog.Info("event bridge connected", "url", cfg.NATS.URL, "prefix", cfg.NATS.SubjectPrefix)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	simulation, err := sim.New(cfg, sim.Options{
		Store:     store,
		Publisher: publishers,
		Metrics:   metrics.New(registry),
	})
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	if err := simulation.Start(ctx); err != nil {
		return fmt.Errorf("starting simulation: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting simulation loop", "interval", cfg.TickInterval)
		if err := simulation.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation loop: %w", err)
		}
		return nil
	})

	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			if err := metrics.Serve(gctx, cfg.Metrics.Addr, cfg.Metrics.Path, registry); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("islesim stopped", "ticks", simulation.Ticks())
	return nil
}

// openStore selects the unlock store by driver. The returned func releases
// its connections.
func openStore(ctx context.Context, cfg config.StorageConfig) (world.UnlockStore, func(), error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		dsn := cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		slog.Info("database connected")

		version, err := db.RunMigrations(ctx, dsn)
		if err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied", "version", version)
		return db.NewUnlockRepository(database.Pool()), database.Close, nil

	case config.StorageRedis:
		store, err := cache.NewRedisUnlockStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("closing redis", "error", err)
			}
		}, nil

	default:
		return world.NewMemoryUnlockStore(), func() {}, nil
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
