package state

import (
	"context"
	"testing"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreEmptyOnFirstRun(t *testing.T) {
	t.Parallel()

	s := setupSQLite(t)
	ids, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}
}

func TestSQLiteStoreRoundTripAndReplace(t *testing.T) {
	t.Parallel()

	s := setupSQLite(t)
	ctx := context.Background()

	if err := s.Save(ctx, IDSet{"a": {}, "b": {}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || !out.Has("a") || !out.Has("b") {
		t.Fatalf("round trip lost ids: %v", out)
	}

	if err := s.Save(ctx, IDSet{"c": {}}); err != nil {
		t.Fatalf("replace save: %v", err)
	}
	out, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load after replace: %v", err)
	}
	if len(out) != 1 || !out.Has("c") {
		t.Fatalf("save must fully replace, got %v", out)
	}
}
