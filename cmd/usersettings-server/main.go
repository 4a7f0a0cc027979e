// Package main is the entry point for the usersettings-server application.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/CreativeUnicorns/usersettings"
	"github.com/CreativeUnicorns/usersettings/api"
	"github.com/CreativeUnicorns/usersettings/store"
)

// config is read from the environment. The -listen-addr flag, when set,
// overrides the listen address.
type config struct {
	ListenAddress string `env:"USERSETTINGS_LISTEN_ADDR" envDefault:":8080"`
	StoreBackend  string `env:"USERSETTINGS_STORE" envDefault:"memory"`
	SQLitePath    string `env:"USERSETTINGS_SQLITE_PATH" envDefault:"usersettings.db"`
	PostgresDSN   string `env:"USERSETTINGS_POSTGRES_DSN"`
	RedisAddr     string `env:"USERSETTINGS_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"USERSETTINGS_REDIS_PASSWORD"`
	RedisDB       int    `env:"USERSETTINGS_REDIS_DB" envDefault:"0"`
	LogLevel      string `env:"USERSETTINGS_LOG_LEVEL" envDefault:"info"`
}

// newStore builds the configured store backend.
func newStore(cfg config) (usersettings.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("USERSETTINGS_POSTGRES_DSN is required for the postgres store")
		}
		return store.NewPostgresStore(cfg.PostgresDSN)
	case "redis":
		return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func parseLogLevel(name string) (usersettings.LogLevel, error) {
	switch name {
	case "debug":
		return usersettings.LogLevelDebug, nil
	case "info":
		return usersettings.LogLevelInfo, nil
	case "warn":
		return usersettings.LogLevelWarn, nil
	case "error":
		return usersettings.LogLevelError, nil
	default:
		return usersettings.LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

func main() {
	listenAddr := flag.String("listen-addr", "", "HTTP listen address (overrides USERSETTINGS_LISTEN_ADDR)")
	flag.Parse()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse environment: %v\n", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.ListenAddress = *listenAddr
	}

	logger := usersettings.NewDefaultLogger()
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("Falling back to info log level", "error", err)
	}
	logger.SetLevel(level)
	logger.Info("Usersettings server starting up...", "store", cfg.StoreBackend)

	st, err := newStore(cfg)
	if err != nil {
		logger.Error("Failed to create store", "error", err)
		os.Exit(1)
	}

	apiCfg := api.Config{
		ListenAddress: cfg.ListenAddress,
		Store:         st,
		Logger:        logger,
	}
	apiServer, err := api.NewServer(apiCfg)
	if err != nil {
		logger.Error("Failed to create API server", "error", err)
		os.Exit(1)
	}

	// Start server in a goroutine
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Stop(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	if err := st.Close(); err != nil {
		logger.Error("Failed to close store", "error", err)
	}

	logger.Info("Server exited gracefully")
}
