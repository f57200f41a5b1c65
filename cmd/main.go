package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/stormcast/internal/adapters/cache"
	"github.com/okian/stormcast/internal/adapters/http/api"
	"github.com/okian/stormcast/internal/adapters/http/swagger"
	"github.com/okian/stormcast/internal/adapters/repository"
	app "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/internal/config"
	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/schedule"
	"github.com/okian/stormcast/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		log.Error(ctx, "stormcast exited", logger.Error(err))
		os.Exit(1)
	}
}

// application holds everything run starts and must stop.
type application struct {
	store *repository.Store
	redis *redis.Client
	svc   *app.Service
	srv   *http.Server
}

// build wires the store, cache, schedule, service and HTTP server from cfg.
func build(ctx context.Context, cfg *config.Config) (*application, error) {
	log := logger.Get()

	store, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &application{store: store}

	storms, status := schedule.LoadOrFallback(ctx, cfg.SchedulePath)
	mode, err := gameclock.ParseMode(cfg.RotationMode)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	epoch, err := cfg.Epoch()
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	rotation, err := gameclock.NewRotation(storms, mode, epoch)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("build rotation: %w", err)
	}

	var lbCache cache.Leaderboards = cache.Noop{}
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis unreachable; leaderboard reads will fall through to the store",
				logger.String("redis_addr", cfg.RedisAddr), logger.Error(err))
		}
		lbCache = cache.NewRedis(a.redis, cfg.CacheTTL())
	}

	a.svc = app.New(store, rotation,
		app.WithLogger(log.Named("service")),
		app.WithCache(lbCache),
		app.WithScheduleStatus(status),
		app.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
		app.WithTickInterval(cfg.TickInterval()),
		app.WithMetricsRefreshInterval(cfg.MetricsRefresh()),
	)

	router := api.NewServer(a.svc, api.WithLogger(log.Named("api"))).Router()
	swagger.Register(ctx, router)

	a.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return a, nil
}

func (a *application) close(ctx context.Context) {
	log := logger.Get()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn(ctx, "redis close failed", logger.Error(err))
		}
	}
	if err := a.store.Close(); err != nil {
		log.Warn(ctx, "store close failed", logger.Error(err))
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	a, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	if err := a.svc.Stop(shutdownCtx); err != nil {
		log.Error(ctx, "service shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return serveErr
}
