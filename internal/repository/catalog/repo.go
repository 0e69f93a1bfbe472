// Package catalog persists and retrieves product records in the vector store.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/stylora/apparel-search/internal/db"
	"github.com/stylora/apparel-search/internal/domain"
	"github.com/stylora/apparel-search/internal/domain/product"
	"github.com/stylora/apparel-search/internal/domain/search/filter"
)

const (
	// IndexName is the FT index over the product catalog.
	IndexName = domain.KeyPrefix + "products:idx"
	keyPrefix = domain.KeyPrefix + "products:"

	vectorField = "vector"
	scoreField  = "__vector_score"
)

// store is the consumer interface for catalog operations (ISP).
type store interface {
	Ping(ctx context.Context) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig holds HNSW build parameters for the product index.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the catalog repository over a db.Store.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a catalog repository.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW overrides HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// Ready reports store reachability.
func (r *Repo) Ready(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("catalog store ping: %w", err)
	}
	return nil
}

// QueryNearest runs one k-nearest-neighbor query against the product index
// with the predicate pushed down as a server-side pre-filter. Results come
// back ranked by descending similarity, metadata only.
func (r *Repo) QueryNearest(
	ctx context.Context, vector []float32, pred filter.Predicate, limit int,
) ([]product.Record, error) {
	q := &db.KNNQuery{
		IndexName:    IndexName,
		Predicate:    pred,
		Vector:       vector,
		K:            limit,
		ReturnFields: append(metadataFields(), scoreField),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	records := make([]product.Record, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		records = append(records, recordFromFields(entry.Fields))
	}
	return records, nil
}

// Upsert writes one product record with its embedding.
func (r *Repo) Upsert(ctx context.Context, rec product.Record, vector []float32) error {
	if rec.ID == "" {
		return fmt.Errorf("product id is required")
	}
	fields := fieldsFromRecord(rec)
	fields[vectorField] = vectorToBytes(vector)

	if err := r.store.HSet(ctx, keyPrefix+rec.ID, fields); err != nil {
		return fmt.Errorf("upsert product %s: %w", rec.ID, err)
	}
	return nil
}

// UpsertBatch writes multiple records in one pipelined round-trip.
func (r *Repo) UpsertBatch(ctx context.Context, recs []product.Record, vectors [][]float32) error {
	if len(recs) != len(vectors) {
		return fmt.Errorf("records/vectors length mismatch: %d != %d", len(recs), len(vectors))
	}
	items := make([]db.HashSetItem, 0, len(recs))
	for i, rec := range recs {
		if rec.ID == "" {
			return fmt.Errorf("product at index %d has no id", i)
		}
		fields := fieldsFromRecord(rec)
		fields[vectorField] = vectorToBytes(vectors[i])
		items = append(items, db.HashSetItem{Key: keyPrefix + rec.ID, Fields: fields})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

// EnsureIndex creates the product FT index. With recreate, any existing
// index is dropped first (fresh ingestion run).
func (r *Repo) EnsureIndex(ctx context.Context, recreate bool) error {
	if recreate {
		if err := r.store.DropIndex(ctx, IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index: %w", err)
		}
	}

	def, err := db.NewIndex(IndexName).
		Prefix(keyPrefix).
		Tag("gender").
		Tag("master_category").
		Tag("subcategory").
		Tag("category").
		Tag("color").
		Tag("season").
		Tag("sleeve_length").
		Tag("item_length").
		Numeric("price").
		VectorHNSW(vectorField, r.vectorDim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Count returns the number of indexed products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
