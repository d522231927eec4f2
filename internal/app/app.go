package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"posrelay/internal/broadcast"
	"posrelay/internal/config"
	"posrelay/internal/postgres"
	redisx "posrelay/internal/redis"
	postgresrepo "posrelay/internal/repository/postgres"
	redisrepo "posrelay/internal/repository/redis"
	"posrelay/internal/service"
	httpgin "posrelay/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	hub        *broadcast.Hub
	httpServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// The process must not serve without a working store.
	store := postgresrepo.NewStore(pgxPool)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	rdb, err := redisx.New(ctx, redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	hub := broadcast.NewHub(rdb, logger)
	cache := redisrepo.NewCache(rdb)
	idem := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	limiter := redisrepo.NewFixedWindowLimiter(rdb, "order", 30, time.Minute)

	svcs := service.NewServices(store, cache, hub, service.Config{})

	router := httpgin.NewRouter(svcs, hub, httpgin.Options{
		Idempotency: idem,
		Limiter:     limiter,
		PublicDir:   cfg.Assets.PublicDir,
	}, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		hub:    hub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Broadcast fan-out loop
	g.Go(func() error {
		if err := a.hub.Run(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("broadcast hub stopped: %w", err)
		}
		return nil
	})

	// HTTP + WebSocket server
	g.Go(func() error {
		a.logger.Info("relay listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
