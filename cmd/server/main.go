package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-directory/internal/config"
	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/handler"
	"github.com/iliyamo/venue-directory/internal/logger"
	"github.com/iliyamo/venue-directory/internal/metrics"
	"github.com/iliyamo/venue-directory/internal/queue"
	"github.com/iliyamo/venue-directory/internal/router"
	"github.com/iliyamo/venue-directory/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := openStore(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("store ready", zap.String("driver", cfg.DB.Driver))

	rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if err != nil {
		// Caching and rate limiting are optional; run without them.
		log.Warn("redis unavailable, cache and rate limit disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	opts := []service.Option{service.WithLogger(log)}
	if cfg.Events.Enabled {
		pub := queue.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		defer pub.Close()
		opts = append(opts, service.WithPublisher(pub))

		audit := &queue.AuditConsumer{
			URL:      cfg.Events.URL,
			Exchange: cfg.Events.Exchange,
			Queue:    cfg.Events.AuditQueue,
			Path:     cfg.Events.AuditLogPath,
			Log:      log,
		}
		go func() {
			if err := audit.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit consumer stopped", zap.Error(err))
			}
		}()
	}
	dir := service.NewDirectory(db, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(logger.Middleware(log))
	e.Use(metrics.NewHTTPMetrics(cfg.ServiceName).Middleware())

	router.RegisterRoutes(e, db)
	router.RegisterDirectory(e, handler.NewDirectoryHandler(dir),
		router.Middlewares(config.LoadRateLimitConfig(), config.LoadCacheConfig(), rdb)...)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

// openStore opens the configured driver and reports its dialect.
func openStore(cfg config.DBConfig) (*sql.DB, database.Dialect, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.Path)
		return db, database.SQLite, err
	default:
		db, err := database.Open(cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
		return db, database.MySQL, err
	}
}
