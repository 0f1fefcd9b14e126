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

	"go.uber.org/zap"

	"github.com/creatorlens/creatorlens/internal/config"
	"github.com/creatorlens/creatorlens/internal/db"
	dbRedis "github.com/creatorlens/creatorlens/internal/db/redis"
	"github.com/creatorlens/creatorlens/internal/domain"
	logpkg "github.com/creatorlens/creatorlens/internal/logger"
	"github.com/creatorlens/creatorlens/internal/metrics"
	"github.com/creatorlens/creatorlens/internal/repository/conversation"
	"github.com/creatorlens/creatorlens/internal/repository/embcache"
	influencerrepo "github.com/creatorlens/creatorlens/internal/repository/influencer"
	chiTransport "github.com/creatorlens/creatorlens/internal/transport/chi"
	openaiClient "github.com/creatorlens/creatorlens/internal/transport/openai"
	analyzeuc "github.com/creatorlens/creatorlens/internal/usecase/analyze"
	chatuc "github.com/creatorlens/creatorlens/internal/usecase/chat"
	healthuc "github.com/creatorlens/creatorlens/internal/usecase/health"
	searchuc "github.com/creatorlens/creatorlens/internal/usecase/search"
	"github.com/creatorlens/creatorlens/internal/version"
)

func main() {
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

	logger.Info("Starting creatorlens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	if err := ensureIndex(ctx, store, cfg); err != nil {
		logger.Fatal("Failed to ensure search index", zap.Error(err))
	}

	// Register external-call metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterAnalyzerMetrics()

	embedder := buildEmbedder(cfg, store, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	chatClient := openaiClient.NewChatClient(&openaiClient.ChatConfig{
		APIKey:      cfg.Analyzer.APIKey,
		BaseURL:     cfg.Analyzer.BaseURL,
		Model:       cfg.Analyzer.Model,
		Temperature: cfg.Analyzer.Temperature,
		MaxTokens:   cfg.Analyzer.MaxTokens,
		Timeout:     time.Duration(cfg.Analyzer.TimeoutSec) * time.Second,
		Logger:      logger,
	})

	// Repositories
	searchRepo := influencerrepo.New(store)
	catalogRepo := influencerrepo.NewCatalog(store, time.Duration(cfg.Catalog.TTLSec)*time.Second)
	convStore := conversation.NewStore()

	// Use case services
	analyzeSvc := analyzeuc.New(chatClient, catalogRepo)
	searchSvc := searchuc.New(searchRepo, embedder, analyzeSvc)
	chatSvc := chatuc.New(analyzeSvc, searchSvc, convStore)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(embedder), chatClient)

	server := chiTransport.NewServer(searchSvc, chatSvc, catalogRepo, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// ensureIndex creates the influencer index if it does not exist yet.
func ensureIndex(ctx context.Context, store db.Store, cfg config.Config) error {
	def := influencerrepo.Definition(influencerrepo.IndexOptions{
		VectorDim:   cfg.Embedding.Dimensions,
		HNSWM:       cfg.Index.HNSWM,
		HNSWEFBuild: cfg.Index.HNSWEFConstruct,
	})

	err := store.CreateIndex(ctx, def)
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) domain.Embedder {
	base := openaiClient.NewEmbedder(&openaiClient.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	return embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
}

// embeddingHealthChecker adapts domain.Embedder to health.ProviderChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}
