// Package ingest loads the product catalog into the vector store.
// Reader → batches → N embedding workers → UpsertBatch.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stylora/apparel-search/internal/domain"
	"github.com/stylora/apparel-search/internal/domain/product"
)

const (
	defaultBatchSize = 50
	defaultWorkers   = 4
)

// repository is the consumer interface over the catalog repository.
type repository interface {
	EnsureIndex(ctx context.Context, recreate bool) error
	UpsertBatch(ctx context.Context, recs []product.Record, vectors [][]float32) error
	Count(ctx context.Context) (int, error)
}

// Ingester embeds and upserts product records in bounded parallel batches.
type Ingester struct {
	repo      repository
	embed     domain.BatchEmbedder
	batchSize int
	workers   int
	logger    *zap.Logger
}

// Result summarizes one ingestion run.
type Result struct {
	Products int
	Batches  int
	Tokens   int64
	Duration time.Duration
}

// New creates an ingester with default batch size and worker count.
func New(repo repository, embed domain.BatchEmbedder, logger *zap.Logger) *Ingester {
	return &Ingester{
		repo:      repo,
		embed:     embed,
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
		logger:    logger,
	}
}

// WithBatchSize overrides the embedding batch size.
func (ing *Ingester) WithBatchSize(n int) *Ingester {
	if n > 0 {
		ing.batchSize = n
	}
	return ing
}

// WithWorkers overrides the concurrent batch count.
func (ing *Ingester) WithWorkers(n int) *Ingester {
	if n > 0 {
		ing.workers = n
	}
	return ing
}

// LoadFile reads product records from a JSON array file. Records without
// an id are skipped with a warning; the rest of the file still loads.
func (ing *Ingester) LoadFile(path string) ([]product.Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var all []product.Record
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse products file %s: %w", path, err)
	}

	recs := make([]product.Record, 0, len(all))
	for i, rec := range all {
		if rec.ID == "" {
			ing.logger.Warn("skipping product without id",
				zap.Int("index", i),
				zap.String("name", rec.Name),
			)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Run recreates the index when asked, then embeds and upserts every
// record. A failing batch aborts the run; partial progress stays in the
// store and a recreate run starts clean.
func (ing *Ingester) Run(ctx context.Context, recs []product.Record, recreate bool) (Result, error) {
	start := time.Now()

	if err := ing.repo.EnsureIndex(ctx, recreate); err != nil {
		return Result{}, fmt.Errorf("ensure index: %w", err)
	}

	var processed, tokens atomic.Int64
	batches := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.workers)

	for offset := 0; offset < len(recs); offset += ing.batchSize {
		end := offset + ing.batchSize
		if end > len(recs) {
			end = len(recs)
		}
		batch := recs[offset:end]
		batches++

		g.Go(func() error {
			if err := ing.processBatch(gctx, batch, &tokens); err != nil {
				return err
			}

			total := processed.Add(int64(len(batch)))
			ing.logger.Info("batch ingested",
				zap.Int64("processed", total),
				zap.Int("total", len(recs)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Products: int(processed.Load()),
		Batches:  batches,
		Tokens:   tokens.Load(),
		Duration: time.Since(start),
	}, nil
}

func (ing *Ingester) processBatch(
	ctx context.Context, batch []product.Record, tokens *atomic.Int64,
) error {
	texts := make([]string, len(batch))
	for i, rec := range batch {
		texts[i] = rec.EmbeddingText()
	}

	embResult, err := ing.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch of %d: %w", len(batch), err)
	}
	tokens.Add(int64(embResult.TotalTokens))

	if err := ing.repo.UpsertBatch(ctx, batch, embResult.Embeddings); err != nil {
		return fmt.Errorf("upsert batch of %d: %w", len(batch), err)
	}
	return nil
}
