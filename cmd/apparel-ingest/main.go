package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stylora/apparel-search/internal/config"
	dbRedis "github.com/stylora/apparel-search/internal/db/redis"
	"github.com/stylora/apparel-search/internal/ingest"
	logpkg "github.com/stylora/apparel-search/internal/logger"
	"github.com/stylora/apparel-search/internal/repository/catalog"
	openaiEmb "github.com/stylora/apparel-search/internal/transport/openai"
	"github.com/stylora/apparel-search/internal/version"
)

func main() {
	var (
		file      = flag.String("file", "data/products.json", "path to the product catalog JSON file")
		recreate  = flag.Bool("recreate", false, "drop and rebuild the search index before loading")
		batchSize = flag.Int("batch-size", 50, "products per embedding request")
		workers   = flag.Int("workers", 4, "concurrent embedding batches")
	)
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog ingestion",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("file", *file),
		zap.Bool("recreate", *recreate),
		zap.Int("batch_size", *batchSize),
		zap.Int("workers", *workers),
	)

	// Ctrl-C cancels the run; completed batches stay in the store.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	repo := catalog.New(store, cfg.Embedding.Dimensions).WithHNSW(catalog.HNSWConfig{
		M:           cfg.Search.HNSWM,
		EFConstruct: cfg.Search.HNSWEFConstruct,
	})

	ing := ingest.New(repo, embedder, logger).
		WithBatchSize(*batchSize).
		WithWorkers(*workers)

	recs, err := ing.LoadFile(*file)
	if err != nil {
		logger.Fatal("Failed to load products file", zap.Error(err))
	}
	logger.Info("Loaded product catalog", zap.Int("products", len(recs)))

	res, err := ing.Run(ctx, recs, *recreate)
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Failed to count indexed products", zap.Error(err))
		count = -1
	}

	logger.Info("Ingestion complete",
		zap.Int("products", res.Products),
		zap.Int("batches", res.Batches),
		zap.Int64("tokens", res.Tokens),
		zap.Duration("duration", res.Duration),
		zap.Int("indexed_total", count),
	)
}
