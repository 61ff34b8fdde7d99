package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hexpanel/hexpanel/internal/cache/memo"
	"github.com/hexpanel/hexpanel/internal/cache/redisstore"
	"github.com/hexpanel/hexpanel/internal/core/config"
	"github.com/hexpanel/hexpanel/internal/core/observability"
	"github.com/hexpanel/hexpanel/internal/core/server"
	"github.com/hexpanel/hexpanel/internal/grid"
	"github.com/hexpanel/hexpanel/internal/logger"
	"github.com/hexpanel/hexpanel/internal/panel"
	"github.com/hexpanel/hexpanel/internal/source"
	"github.com/hexpanel/hexpanel/internal/source/csvsource"
	"github.com/hexpanel/hexpanel/internal/source/pgsource"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// overriding source via flag
	sourceFlag := flag.String("source", "", "geometry source (csv|postgres)")
	flag.Parse()

	cfg := config.FromEnv()
	if *sourceFlag != "" {
		cfg.Source = strings.ToLower(strings.TrimSpace(*sourceFlag))
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "hexpanel-server",
	}, os.Stdout)

	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting hexpanel",
		"addr", cfg.Addr,
		"version", Version,
		"source", cfg.Source,
		"cache_backend", cfg.CacheBackend)

	// the capability probe runs once, before anything can issue a fill;
	// no usable convention is fatal here rather than silently wrong later
	idx, err := grid.Detect()
	if err != nil {
		appLog.Error("grid index unavailable", "err", err)
		return 1
	}
	appLog.Info("grid index detected", "convention", idx.Name())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		appLog.Error("source setup failed", "err", err)
		return 1
	}
	defer cleanup()

	store, closeStore, err := buildMemo(ctx, cfg)
	if err != nil {
		appLog.Error("memo setup failed", "err", err)
		return 1
	}
	defer closeStore()

	engine := panel.New(appLog, src, idx, store)

	if err := server.Run(ctx, cfg, appLog, engine); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}

func buildSource(ctx context.Context, cfg config.Config) (source.Interface, func(), error) {
	switch cfg.Source {
	case "csv":
		s, err := csvsource.New(cfg.CSVPath)
		if err != nil {
			return nil, nil, fmt.Errorf("csv source: %w", err)
		}
		return s, func() {}, nil
	case "postgres":
		s, err := pgsource.New(ctx, cfg.PostgresDSN, cfg.PostgresTable)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres source: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q (csv|postgres)", cfg.Source)
	}
}

func buildMemo(ctx context.Context, cfg config.Config) (memo.Backend, func(), error) {
	switch cfg.CacheBackend {
	case "memory":
		return memo.NewMemory(cfg.CacheSize, cfg.CacheTTL), func() {}, nil
	case "redis":
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		cli, err := redisstore.New(pingCtx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("redis memo: %w", err)
		}
		return memo.NewRedis(cli, cfg.CacheTTL, cfg.CacheOpTimeout), func() { _ = cli.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q (memory|redis)", cfg.CacheBackend)
	}
}
