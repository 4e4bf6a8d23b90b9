package entrypoint

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/config"
	"github.com/ndtprep/examtrainer/internal/database"
	http_controllers "github.com/ndtprep/examtrainer/internal/http"
	"github.com/ndtprep/examtrainer/internal/kvstore"
	"github.com/ndtprep/examtrainer/internal/seeder"
	"github.com/ndtprep/examtrainer/internal/store"
)

// NewStore builds the store implementation selected by the configuration.
// The returned store is not opened yet.
func NewStore(cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return database.NewStore(cfg.Database.Path, logger), nil
	case config.BackendRedis:
		return kvstore.NewStore(cfg.Redis.URL, cfg.Redis.Namespace, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM, then give in-flight requests the configured
	// timeout to finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("starting exam trainer", "version", version, "backend", cfg.Storage.Backend)

	st, err := NewStore(cfg, logger)
	if err != nil {
		logger.Error("store selection failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := st.Open(ctx); err != nil {
		logger.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "error", err)
		}
	}()

	if cfg.Seed.Enabled {
		if err := seeder.New(st, logger).Seed(ctx); err != nil {
			logger.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	router := http_controllers.NewRouter(st)

	Serve(router, cfg, logger)
}
