package search

import (
	"context"

	"github.com/stylora/apparel-search/internal/domain"
	"github.com/stylora/apparel-search/internal/domain/product"
	"github.com/stylora/apparel-search/internal/domain/search/filter"
)

// Repository defines the storage contract for product retrieval.
type Repository interface {
	Ready(ctx context.Context) error
	QueryNearest(
		ctx context.Context, vector []float32, pred filter.Predicate, limit int,
	) ([]product.Record, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
