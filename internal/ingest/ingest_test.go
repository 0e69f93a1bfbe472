package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/stylora/apparel-search/internal/domain"
	"github.com/stylora/apparel-search/internal/domain/product"
)

// --- Mocks ---

type mockRepo struct {
	mu            sync.Mutex
	ensureCalls   []bool
	upserted      map[string][]float32
	upsertErr     error
	ensureErr     error
	upsertBatches int
}

func newMockRepo() *mockRepo {
	return &mockRepo{upserted: map[string][]float32{}}
}

func (m *mockRepo) EnsureIndex(_ context.Context, recreate bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureCalls = append(m.ensureCalls, recreate)
	return m.ensureErr
}

func (m *mockRepo) UpsertBatch(_ context.Context, recs []product.Record, vectors [][]float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertBatches++
	for i, rec := range recs {
		m.upserted[rec.ID] = vectors[i]
	}
	return nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upserted), nil
}

type mockBatchEmbedder struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (m *mockBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	m.calls = append(m.calls, texts)
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{float32(len(texts[i]))}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings, TotalTokens: len(texts) * 3}, nil
}

func testProducts(n int) []product.Record {
	recs := make([]product.Record, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, product.Record{
			ID:               "p" + string(rune('a'+i)),
			Name:             "Product",
			ShortDescription: "Desc",
		})
	}
	return recs
}

// --- Tests ---

func TestRun_IngestsAllRecords(t *testing.T) {
	repo := newMockRepo()
	embed := &mockBatchEmbedder{}
	ing := New(repo, embed, zap.NewNop()).WithBatchSize(3).WithWorkers(2)

	recs := testProducts(8)
	res, err := ing.Run(context.Background(), recs, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Products != 8 {
		t.Errorf("products = %d, want 8", res.Products)
	}
	if res.Batches != 3 {
		t.Errorf("batches = %d, want 3", res.Batches)
	}
	if res.Tokens != 24 {
		t.Errorf("tokens = %d, want 24", res.Tokens)
	}
	if len(repo.upserted) != 8 {
		t.Errorf("upserted %d records, want 8", len(repo.upserted))
	}
	if len(repo.ensureCalls) != 1 || !repo.ensureCalls[0] {
		t.Errorf("expected one EnsureIndex(recreate=true) call, got %v", repo.ensureCalls)
	}
}

func TestRun_EmbedsNameAndDescription(t *testing.T) {
	repo := newMockRepo()
	embed := &mockBatchEmbedder{}
	ing := New(repo, embed, zap.NewNop())

	recs := []product.Record{{ID: "p1", Name: "Silk Blouse", ShortDescription: "Lightweight."}}
	if _, err := ing.Run(context.Background(), recs, false); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(embed.calls) != 1 || len(embed.calls[0]) != 1 {
		t.Fatalf("unexpected embed calls: %v", embed.calls)
	}
	if embed.calls[0][0] != "Silk Blouse. Lightweight." {
		t.Errorf("embedding text = %q", embed.calls[0][0])
	}
}

func TestRun_EnsureIndexError(t *testing.T) {
	repo := newMockRepo()
	repo.ensureErr = errors.New("index build failed")
	ing := New(repo, &mockBatchEmbedder{}, zap.NewNop())

	if _, err := ing.Run(context.Background(), testProducts(2), true); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.upserted) != 0 {
		t.Error("no records should be upserted after index failure")
	}
}

func TestRun_EmbedErrorAborts(t *testing.T) {
	repo := newMockRepo()
	embed := &mockBatchEmbedder{err: errors.New("quota exceeded")}
	ing := New(repo, embed, zap.NewNop()).WithBatchSize(2)

	if _, err := ing.Run(context.Background(), testProducts(4), false); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_UpsertErrorAborts(t *testing.T) {
	repo := newMockRepo()
	repo.upsertErr = errors.New("connection reset")
	ing := New(repo, &mockBatchEmbedder{}, zap.NewNop()).WithBatchSize(2)

	if _, err := ing.Run(context.Background(), testProducts(4), false); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_Empty(t *testing.T) {
	repo := newMockRepo()
	ing := New(repo, &mockBatchEmbedder{}, zap.NewNop())

	res, err := ing.Run(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Products != 0 || res.Batches != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	data := `[
		{"id": "p1", "name": "Dress", "short_description": "A dress.", "price": 49.9,
		 "gender": "female", "season": "summer", "occasion_tags": ["beach"]},
		{"name": "No ID Product"},
		{"id": "p2", "name": "Scarf"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	ing := New(newMockRepo(), &mockBatchEmbedder{}, zap.NewNop())
	recs, err := ing.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("expected 2 records (1 skipped), got %d", len(recs))
	}
	if recs[0].ID != "p1" || recs[0].Price != 49.9 || recs[0].Season != "summer" {
		t.Errorf("unexpected first record: %+v", recs[0])
	}
	if len(recs[0].OccasionTags) != 1 || recs[0].OccasionTags[0] != "beach" {
		t.Errorf("occasion tags = %v", recs[0].OccasionTags)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	ing := New(newMockRepo(), &mockBatchEmbedder{}, zap.NewNop())
	if _, err := ing.LoadFile(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	ing := New(newMockRepo(), &mockBatchEmbedder{}, zap.NewNop())
	if _, err := ing.LoadFile("/does/not/exist.json"); err == nil {
		t.Fatal("expected error")
	}
}
