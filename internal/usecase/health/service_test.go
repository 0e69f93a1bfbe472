package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

type mockCounter struct {
	n   int
	err error
}

func (m *mockCounter) Count(_ context.Context) (int, error) { return m.n, m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{}, &mockCounter{n: 120})
	rep := svc.Check(context.Background())

	if rep.Status != Healthy {
		t.Errorf("status = %s, want %s", rep.Status, Healthy)
	}
	if rep.Checks["database"] != CheckOK || rep.Checks["embedding"] != CheckOK {
		t.Errorf("unexpected checks: %v", rep.Checks)
	}
	if rep.Products != 120 {
		t.Errorf("products = %d, want 120", rep.Products)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("refused")}, &mockChecker{}, &mockCounter{n: 120})
	rep := svc.Check(context.Background())

	if rep.Status != Degraded {
		t.Errorf("status = %s, want %s", rep.Status, Degraded)
	}
	if rep.Checks["database"] != CheckError {
		t.Errorf("database check = %s", rep.Checks["database"])
	}
	if rep.Products != -1 {
		t.Errorf("count must be skipped when db is down, got %d", rep.Products)
	}
}

func TestCheck_EmbeddingDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("401")}, nil)
	rep := svc.Check(context.Background())

	if rep.Status != Degraded {
		t.Errorf("status = %s, want %s", rep.Status, Degraded)
	}
	if rep.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %s", rep.Checks["embedding"])
	}
}

func TestCheck_NilOptionalComponents(t *testing.T) {
	svc := New(&mockPinger{}, nil, nil)
	rep := svc.Check(context.Background())

	if rep.Status != Healthy {
		t.Errorf("status = %s, want %s", rep.Status, Healthy)
	}
	if _, ok := rep.Checks["embedding"]; ok {
		t.Error("nil embedding checker must not be reported")
	}
	if rep.Products != -1 {
		t.Errorf("products = %d, want -1", rep.Products)
	}
}

func TestCheck_CountErrorKeepsHealthy(t *testing.T) {
	svc := New(&mockPinger{}, nil, &mockCounter{err: errors.New("index missing")})
	rep := svc.Check(context.Background())

	if rep.Status != Healthy {
		t.Errorf("a failed count is informational only, status = %s", rep.Status)
	}
	if rep.Products != -1 {
		t.Errorf("products = %d, want -1", rep.Products)
	}
}
