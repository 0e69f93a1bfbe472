// Package search implements staged product retrieval: a strict filtered
// pass first, then progressively relaxed passes until something matches.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/stylora/apparel-search/internal/domain"
	"github.com/stylora/apparel-search/internal/domain/product"
	"github.com/stylora/apparel-search/internal/domain/search/filter"
)

// DefaultTopK is the number of nearest neighbors requested per stage.
const DefaultTopK = 10

// Stage identifiers, in relaxation order.
const (
	StageStrict  = 1
	StageRelaxed = 2
	StageHard    = 3
)

// Result is the outcome of a staged search. Stage reports which pass
// produced the products; zero means every executed stage came back empty.
type Result struct {
	Products []product.Record
	Stage    int
}

// Service handles product search with staged filter relaxation.
type Service struct {
	repo  Repository
	embed Embedder
	topK  int
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed, topK: DefaultTopK}
}

// WithTopK overrides the per-stage result count.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Find embeds the query once and runs up to three KNN passes against the
// catalog, each with a weaker predicate than the last:
//
//	stage 1: every provided filter
//	stage 2: subcategory, color, and item length dropped
//	stage 3: gender and season only
//
// The first stage that returns products wins. Relaxation is only a remedy
// for empty matches; any store failure aborts the whole search.
func (s *Service) Find(ctx context.Context, query string, filters filter.Request) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	if err := s.repo.Ready(ctx); err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}
	vector := embResult.Embedding

	stages := []struct {
		stage int
		pred  filter.Predicate
	}{
		{StageStrict, filter.Compile(filters)},
		{StageRelaxed, filter.Compile(filters.RelaxSoftDescriptors())},
		{StageHard, filter.Compile(filters.HardOnly())},
	}

	for _, st := range stages {
		// The final fallback is only worth a round-trip when it still
		// constrains anything.
		if st.stage == StageHard && st.pred.IsZero() {
			break
		}

		records, err := s.repo.QueryNearest(ctx, vector, st.pred, s.topK)
		if err != nil {
			return Result{}, domain.NewStageError(st.stage, err)
		}
		if len(records) > 0 {
			return Result{Products: records, Stage: st.stage}, nil
		}
	}

	return Result{}, nil
}
