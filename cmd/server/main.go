package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/segment-persona-agent/internal/a2a"
	"github.com/BerylCAtieno/segment-persona-agent/internal/analyzer"
	"github.com/BerylCAtieno/segment-persona-agent/internal/api"
	"github.com/BerylCAtieno/segment-persona-agent/internal/cache"
	"github.com/BerylCAtieno/segment-persona-agent/internal/config"
	"github.com/BerylCAtieno/segment-persona-agent/internal/logging"
	"github.com/BerylCAtieno/segment-persona-agent/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resultCache, closeCache, err := newResultCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	service := analyzer.NewService(resultCache, logger.Named("analyzer"))

	var narrator api.Narrator
	if cfg.NarrativeEnabled() {
		geminiClient, err := profiler.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return err
		}
		defer geminiClient.Close()
		narrator = geminiClient
		logger.Info("narrative generation enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		logger.Info("narrative generation disabled, GEMINI_API_KEY not set")
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger.Named("http")))

	api.NewHandler(service, narrator, logger.Named("api")).Register(router)

	a2aLogger := logger.Named("a2a")
	a2aHandler := a2a.NewA2AHandler(service, a2aLogger)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/persona", a2a.RequestLoggingMiddleware(a2aLogger), a2aHandler.HandlePersona)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("segment persona agent starting",
			zap.String("port", cfg.Server.Port),
			zap.String("agent_card", "http://localhost:"+cfg.Server.Port+"/.well-known/agent.json"),
			zap.String("a2a_endpoint", "http://localhost:"+cfg.Server.Port+"/a2a/persona"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newResultCache connects to Redis when the cache is enabled. An unreachable
// Redis disables caching instead of failing startup.
func newResultCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.ResultCache, func(), error) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		return cache.NoopCache{}, noop, nil
	}

	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, noop, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	redisCache := cache.NewRedisCache(client, ttl)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, analysis cache disabled", zap.String("addr", cfg.Cache.Addr), zap.Error(err))
		_ = client.Close()
		return cache.NoopCache{}, noop, nil
	}

	logger.Info("analysis cache enabled", zap.String("addr", cfg.Cache.Addr), zap.Duration("ttl", ttl))
	return redisCache, func() { _ = client.Close() }, nil
}
