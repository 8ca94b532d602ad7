package novelty

import (
	"testing"

	"jobdigest/internal/listing"
	"jobdigest/internal/state"
)

func rowsWithIDs(ids ...string) []listing.Row {
	rows := make([]listing.Row, len(ids))
	for i, id := range ids {
		rows[i] = listing.Row{ID: id, Company: "c-" + id}
	}
	return rows
}

func set(ids ...string) state.IDSet {
	s := state.IDSet{}
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestSelectWindowReplacesState(t *testing.T) {
	t.Parallel()

	// prev {A,B,C}, current top-2 {C,D}: D is new, state becomes exactly {C,D}.
	res := Select(rowsWithIDs("C", "D", "E"), set("A", "B", "C"), Policy{Kind: Window, K: 2})

	if len(res.New) != 1 || res.New[0].ID != "D" {
		t.Fatalf("new = %+v, want just D", res.New)
	}
	if len(res.Persist) != 2 || !res.Persist.Has("C") || !res.Persist.Has("D") {
		t.Fatalf("persist = %v, want exactly {C,D}", res.Persist)
	}
	if res.Persist.Has("A") || res.Persist.Has("B") {
		t.Fatal("A and B must be dropped by the window replace")
	}
}

func TestSelectWindowLargerThanRows(t *testing.T) {
	t.Parallel()

	res := Select(rowsWithIDs("A", "B"), set(), Policy{Kind: Window, K: 50})
	if len(res.New) != 2 || len(res.Persist) != 2 {
		t.Fatalf("new=%d persist=%d, want 2/2", len(res.New), len(res.Persist))
	}
}

func TestSelectAccumulateUnions(t *testing.T) {
	t.Parallel()

	// prev {A,B}, rows {B,C}: only C is new, state becomes {A,B,C}.
	res := Select(rowsWithIDs("B", "C"), set("A", "B"), Policy{Kind: Accumulate})

	if len(res.New) != 1 || res.New[0].ID != "C" {
		t.Fatalf("new = %+v, want just C", res.New)
	}
	for _, id := range []string{"A", "B", "C"} {
		if !res.Persist.Has(id) {
			t.Fatalf("persist missing %s: %v", id, res.Persist)
		}
	}
	if len(res.Persist) != 3 {
		t.Fatalf("persist has %d ids, want 3", len(res.Persist))
	}
}

func TestSelectIdempotentSecondRun(t *testing.T) {
	t.Parallel()

	rows := rowsWithIDs("A", "B", "C")

	first := Select(rows, set(), Policy{Kind: Accumulate})
	if len(first.New) != 3 {
		t.Fatalf("first run new = %d, want 3", len(first.New))
	}

	second := Select(rows, first.Persist, Policy{Kind: Accumulate})
	if len(second.New) != 0 {
		t.Fatalf("unchanged source must yield zero new rows, got %d", len(second.New))
	}
	if len(second.Persist) != len(first.Persist) {
		t.Fatal("state must not change on an unchanged source")
	}
}

func TestSelectZeroNewIsNotAnError(t *testing.T) {
	t.Parallel()

	res := Select(rowsWithIDs("A"), set("A"), Policy{Kind: Window, K: 10})
	if res.New != nil {
		t.Fatalf("new = %+v, want empty", res.New)
	}
	if !res.Persist.Has("A") {
		t.Fatal("window ids persist even when nothing is new")
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	t.Parallel()

	res := Select(rowsWithIDs("X", "Y", "Z"), set(), Policy{Kind: Window, K: 3})
	for i, want := range []string{"X", "Y", "Z"} {
		if res.New[i].ID != want {
			t.Fatalf("new[%d] = %s, want %s", i, res.New[i].ID, want)
		}
	}
}
