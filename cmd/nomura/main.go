package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shirwani/chloe-nomura-home/internal/config"
	"github.com/shirwani/chloe-nomura-home/internal/db"
	dbRedis "github.com/shirwani/chloe-nomura-home/internal/db/redis"
	"github.com/shirwani/chloe-nomura-home/internal/domain"
	logpkg "github.com/shirwani/chloe-nomura-home/internal/logger"
	"github.com/shirwani/chloe-nomura-home/internal/metrics"
	budgetrepo "github.com/shirwani/chloe-nomura-home/internal/repository/budget"
	cartrepo "github.com/shirwani/chloe-nomura-home/internal/repository/cart"
	"github.com/shirwani/chloe-nomura-home/internal/repository/embcache"
	inventoryrepo "github.com/shirwani/chloe-nomura-home/internal/repository/inventory"
	orderrepo "github.com/shirwani/chloe-nomura-home/internal/repository/order"
	userrepo "github.com/shirwani/chloe-nomura-home/internal/repository/user"
	chiTransport "github.com/shirwani/chloe-nomura-home/internal/transport/chi"
	openaiEmb "github.com/shirwani/chloe-nomura-home/internal/transport/openai"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	checkoutuc "github.com/shirwani/chloe-nomura-home/internal/usecase/checkout"
	embeddinguc "github.com/shirwani/chloe-nomura-home/internal/usecase/embedding"
	healthuc "github.com/shirwani/chloe-nomura-home/internal/usecase/health"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
	usageuc "github.com/shirwani/chloe-nomura-home/internal/usecase/usage"
	useruc "github.com/shirwani/chloe-nomura-home/internal/usecase/user"
	"github.com/shirwani/chloe-nomura-home/internal/version"
)

// embeddingProvider labels budget counters, metrics, and usage reports.
const embeddingProvider = "openai"

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting storefront API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.Server.Port),
		zap.Strings("redis_addrs", cfg.Redis.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create redis store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Redis not ready", zap.Error(err))
	}
	logger.Info("Connected to redis")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterStorefrontMetrics()

	apiKey, err := cfg.OpenAI.ResolveAPIKey()
	if err != nil {
		logger.Fatal("Failed to resolve OpenAI API key", zap.Error(err))
	}

	// Single BudgetTracker shared between the embedder chain and the usage
	// service. The budget store also backs historical usage reports, so it
	// is created regardless of whether limits are set.
	budgetStore := budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour)

	var budget *embeddinguc.BudgetTracker
	budgetCfg := cfg.OpenAI.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := embeddinguc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = embeddinguc.BudgetActionReject
		}
		budget = embeddinguc.NewBudgetTracker(
			embeddingProvider, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		// Connect persistence store -- loads current counters from redis.
		budget.WithStore(ctx, budgetStore)
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker embeddinguc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}

	embedder, baseEmbedder := buildEmbedder(cfg, apiKey, store, budgetChecker, logger)
	logger.Info("Embedder created",
		zap.String("provider", embeddingProvider),
		zap.String("model", cfg.OpenAI.Model),
		zap.Int("dimensions", cfg.OpenAI.Dimensions),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Create repositories (domain-native, no adapters)
	invRepo := inventoryrepo.New(store)
	cartRepo := cartrepo.New(store, time.Duration(cfg.Cart.TTLHours)*time.Hour)
	orderRepo := orderrepo.New(store)
	userRepo := userrepo.New(store, time.Duration(cfg.Users.ResetTokenTTLMin)*time.Minute)

	// Create use case services
	invSvc := inventoryuc.New(invRepo).
		WithFuzzyThreshold(float64(cfg.Search.FuzzyThreshold))
	searchSvc := searchuc.New(invRepo, embedder).WithTuning(searchuc.Tuning{
		SemanticWeight: cfg.Search.SemanticWeight,
		KeywordWeight:  cfg.Search.KeywordWeight,
		CategoryWeight: cfg.Search.CategoryWeight,
		MinScore:       cfg.Search.ScoreCutoff,
	})
	cartSvc := cartuc.New(cartRepo, invRepo)
	checkoutSvc := checkoutuc.New(cartRepo, invSvc, orderRepo)
	userSvc := useruc.New(userRepo)

	// Usage service -- reads live counters from the shared BudgetTracker and
	// historical per-day spend from the budget store.
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	usageSvc := usageuc.New(embeddingProvider, budgetReader, budgetStore)

	// Health service probes redis and the raw provider client. The
	// decorators sit above budget and cache concerns that a health probe
	// must not consume.
	healthSvc := healthuc.New(store, baseEmbedder)

	server := chiTransport.NewServer(
		invSvc, searchSvc, cartSvc, checkoutSvc, userSvc, usageSvc, healthSvc,
		cfg.Auth.APIKeys, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
// The base client is returned separately so the health service can probe the
// provider without going through budget enforcement or the cache.
func buildEmbedder(
	cfg config.Config,
	apiKey string,
	store db.Store,
	budget embeddinguc.BudgetChecker,
	logger *zap.Logger,
) (*embeddinguc.InstrumentedEmbedder, *openaiEmb.Embedder) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     apiKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.Model,
		Dimensions: cfg.OpenAI.Dimensions,
		Provider:   embeddingProvider,
		Logger:     logger,
	})

	var inner domain.Embedder = base
	if cfg.Cache.Enabled && store != nil {
		inner = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger).
			WithTTL(time.Duration(cfg.Cache.TTLHours) * time.Hour)
	}

	// Instrumented (budget + logging)
	instrumented := embeddinguc.NewInstrumentedEmbedder(
		inner, embeddingProvider, cfg.OpenAI.Model, budget, logger,
	)

	return instrumented, base
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line -- one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
