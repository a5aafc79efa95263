package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"

	"github.com/dharmasatrya/aerohub/internal/cache"
	"github.com/dharmasatrya/aerohub/internal/config"
	"github.com/dharmasatrya/aerohub/internal/handler"
	"github.com/dharmasatrya/aerohub/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	flags := pflag.NewFlagSet("aerohub-server", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default: ./aerohub.yaml)")
	flags.String("port", "", "listen port")
	flags.String("store", "", "catalog store: memory or postgres")
	flags.String("database-url", "", "PostgreSQL connection string")
	flags.Bool("cache", false, "cache list pages in Redis")
	flags.String("redis-addr", "", "Redis address")
	flags.String("log-level", "", "log level")
	flags.String("log-format", "", "log format: text or json")
	_ = flags.Parse(os.Args[1:])

	cfg, cfgUsed, err := config.Load(*cfgFile, flags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	if cfgUsed != "" {
		logger.Info("loaded config file", "path", cfgUsed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		stop()
		os.Exit(1)
	}
}

// Replaced in tests.
var (
	openStore = defaultOpenStore
	openCache = defaultOpenCache
)

// run serves the catalog until ctx is done. Resources opened here are closed before it returns.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	catalogStore, err := openStore(ctx, cfg.Server)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Server.Store, err)
	}
	defer catalogStore.Close()
	logger.Info("catalog store ready", "store", cfg.Server.Store)

	pageCache, err := openCache(cfg.Server.Cache)
	if err != nil {
		return fmt.Errorf("connect to Redis at %s: %w", cfg.Server.Cache.RedisAddr, err)
	}
	defer pageCache.Close()
	if cfg.Server.Cache.Enabled {
		logger.Info("redis cache enabled", "addr", cfg.Server.Cache.RedisAddr, "ttl", cfg.Server.Cache.TTL)
	} else {
		logger.Info("cache disabled")
	}

	e := newServer(catalogStore, pageCache, logger)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting airport catalog server", "port", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-serveErr
	return nil
}

func newServer(catalogStore store.Store, pageCache cache.Cache, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	catalogHandler := handler.NewCatalogHandler(catalogStore, pageCache, logger)

	api := e.Group("/api/v1")
	catalogHandler.Register(api)
	e.GET("/health", handler.HealthHandler)
	return e
}

func defaultOpenCache(cfg config.CacheConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		return cache.NewNoOpCache(), nil
	}
	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr: cfg.RedisAddr,
		TTL:  cfg.TTL,
	})
	if err != nil {
		return nil, err
	}
	return redisCache, nil
}

func defaultOpenStore(ctx context.Context, cfg config.ServerConfig) (store.Store, error) {
	if cfg.Store == config.StorePostgres {
		return store.NewPostgres(ctx, cfg.DatabaseURL)
	}
	return store.NewSeededMemory()
}
