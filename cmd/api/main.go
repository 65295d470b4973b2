package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ProductAPI/internal/auth"
	"ProductAPI/internal/catalog"
	"ProductAPI/internal/config"
	"ProductAPI/internal/gateway"
	"ProductAPI/pkg/kit"
)

func main() {
	service := "api"

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.Session.SecretIsTemp {
		log.Warn("SESSION_SECRET not set, using a random per-process secret")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pool := kit.NewWorkerPool(kit.PoolConfig{
		Name:      "products",
		Workers:   cfg.Pool.Workers,
		QueueSize: cfg.Pool.QueueSize,
		Log:       log,
		Metrics:   kit.NewPoolMetrics(reg),
	})

	users := auth.NewMemStore(cfg.BcryptCost)
	if err := auth.EnsureDefaultUser(users, cfg.Seed.Username, cfg.Seed.Password, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	products := catalog.NewMemStore(catalog.MemStoreConfig{
		Pool:  pool,
		Delay: cfg.Pool.CreateDelay,
		Log:   log,
	})

	h, err := gateway.NewHandler(
		gateway.Deps{
			Users:    users,
			Products: products,
			Sessions: auth.NewSessionManager(auth.SessionConfig{
				Secret:     cfg.Session.Secret,
				TTL:        cfg.Session.TTL,
				CookieName: cfg.Session.CookieName,
				Secure:     cfg.Session.Secure,
			}),
			Pool: pool,
		},
		gateway.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsToken:   cfg.Metrics.Token,
		},
	)
	if err != nil {
		log.Fatal("init handler failed", zap.Error(err))
	}

	log.Info("task pool ready",
		zap.Int("workers", pool.Workers()),
		zap.Int("queue_size", pool.Capacity()),
		zap.Duration("create_delay", cfg.Pool.CreateDelay),
	)

	drain := func(ctx context.Context) error {
		log.Info("draining task pool", zap.Int("pending", pool.Pending()))
		return pool.Shutdown(ctx)
	}

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, cfg.ShutdownTimeout, drain); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
