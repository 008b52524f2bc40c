package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/config"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/handler"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/cache"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/client"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/observability"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/resilience"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/supabase"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/port"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Bool("use_redis", cfg.UseRedis),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("min_occurrences", cfg.MinOccurrences),
		zap.Int("lookahead_days", cfg.LookaheadDays),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "radar")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	var seriesCache port.Cache[[]domain.RecurringSeries]
	if cfg.UseRedis {
		logger.Info("using Redis series cache", zap.String("redis_addr", cfg.RedisAddr))
		seriesCache = cache.NewRedis[[]domain.RecurringSeries](cfg.RedisAddr, cfg.CacheTTL, logger)
	} else {
		seriesCache = cache.New[[]domain.RecurringSeries](cfg.CacheTTL)
	}

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("transaction-sources")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Transaction sources ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var fetchers []port.TransactionsFetcher
	if cfg.UseSupabase && cfg.SupabaseURL != "" {
		logger.Info("using Supabase as transaction source",
			zap.String("supabase_url", cfg.SupabaseURL),
		)
		fetchers = append(fetchers, supabase.NewClient(
			httpClient,
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			cb,
			resilienceCfg,
			logger,
		))
	} else {
		logger.Info("using transactions HTTP API as transaction source")
		fetchers = append(fetchers, client.NewTransactionsClient(
			httpClient, cfg.TransactionsAPIURL, cb, resilienceCfg,
		))
	}

	// --- Service ---
	radarSvc := service.NewRadar(
		fetchers,
		seriesCache,
		cfg.Detection(),
		bulkhead,
		metrics,
		logger,
	)

	// --- Router ---
	router := handler.NewRouter(radarSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
