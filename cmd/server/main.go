// Package main is the entry point for the cartline API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"cartline/internal/config"
	"cartline/internal/core/types"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/draft"
	"cartline/internal/domain/stock"
	v1 "cartline/internal/infrastructure/http/v1"
	"cartline/internal/infrastructure/storage/postgres"
	"cartline/internal/infrastructure/storage/postgres/catalog_repo"
	"cartline/internal/infrastructure/storage/postgres/register_repo"
	redisstore "cartline/internal/infrastructure/storage/redis"
	"cartline/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting cartline server")

	// --- Database connection ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(pool)
	stockRepo := register_repo.NewStockRepo(pool)

	draftRepo, err := newDraftRepository(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize draft store", "error", err)
	}

	// --- Services ---
	markup, err := types.NewMoneyFromString(cfg.SuggestedPriceMarkup)
	if err != nil {
		log.Fatalw("invalid markup", "value", cfg.SuggestedPriceMarkup, "error", err)
	}

	productService := product.NewService(productRepo)
	stockService := stock.NewService(stockRepo, markup)
	draftService := draft.NewService(draftRepo, productService, stockService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		ProductService: productService,
		StockService:   stockService,
		DraftService:   draftService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}

	log.Info("server stopped")
}

// newDraftRepository selects the draft store backend. Redis when an address
// is configured, otherwise the in-memory store (single instance only).
func newDraftRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (draft.Repository, error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, using in-memory draft store")
		return draft.NewMemoryRepository(), nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Infow("redis draft store initialized", "addr", cfg.RedisAddr, "ttl", cfg.DraftTTL)
	return redisstore.NewDraftRepository(client, cfg.DraftTTL)
}
