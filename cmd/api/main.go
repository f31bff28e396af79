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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gamecontest/internal/auth"
	"gamecontest/internal/classify"
	"gamecontest/internal/httpx"
	"gamecontest/internal/logging"
	"gamecontest/internal/platform/rawg"
	"gamecontest/internal/search"
	"gamecontest/internal/submission"
)

func main() {
	loadEnvFiles()
	log := logging.NewLogger("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.WithError(err).Fatal("api stopped")
	}
}

func run(ctx context.Context, log *logrus.Entry) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy := classify.DefaultPolicy()
	if cfg.PolicyPath != "" {
		if policy, err = classify.LoadPolicy(cfg.PolicyPath); err != nil {
			return err
		}
		log.WithField("path", cfg.PolicyPath).Info("classification policy loaded")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pool, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("database connection OK")

	var (
		cache       search.Cache = search.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL)
		revocations httpx.Revocations
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		cache = search.NewRedisCache(rdb, cfg.CacheTTL, log)
		revocations = auth.NewRedisRevocations(rdb)
		log.Info("redis search cache enabled")
	}

	catalog := rawg.NewClient(cfg.Catalog, log)
	classifier := classify.New(policy, log)
	searchService := search.NewService(catalog, classifier, search.Options{
		Cache:   cache,
		Metrics: search.NewMetrics(registry),
		Logger:  log,
	})
	submissionService := submission.NewService(submission.NewPostgresRepo(pool, cfg.DBTimeout), searchService, log)

	handler := newRouter(routerDeps{
		cfg:         cfg,
		log:         log,
		registry:    registry,
		db:          pool,
		search:      searchService,
		submissions: submissionService,
		revocations: revocations,
		rateLimiter: httpx.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, httpx.WithTrustedProxies(cfg.TrustedProxies...)),
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", redactDSN(dsn), err)
	}
	return pool, nil
}
