// Package novelty decides which rows get notified this run and what the
// persisted ID set becomes afterwards. It is pure: no I/O, no clock.
package novelty

import (
	"jobdigest/internal/listing"
	"jobdigest/internal/state"
)

// PolicyKind selects how state evolves across runs.
type PolicyKind string

const (
	// Window keeps exactly the IDs of the current top-K rows, fully
	// replacing prior state each run.
	Window PolicyKind = "window"
	// Accumulate grows the ID set monotonically and never forgets.
	Accumulate PolicyKind = "accumulate"
)

type Policy struct {
	Kind PolicyKind
	// K is the window size; only meaningful for Window.
	K int
}

// Result is what one selection run produces. New preserves the input
// sort order. Persist is the complete set to store next; the caller
// must write it only after the notification is confirmed sent.
type Result struct {
	New     []listing.Row
	Persist state.IDSet
}

// Select diffs the sorted current rows against previously persisted IDs.
//
// Window policy: the first K rows are the window; a window row is new
// when its ID was not persisted, and Persist becomes exactly the window
// IDs regardless of which ones were new. IDs that fell out of the
// window are dropped without ever being "removed" explicitly.
//
// Accumulate policy: any row with an unseen ID is new, and Persist is
// prev plus the IDs just classified as new. Rows already known are
// never re-added or dropped.
//
// An empty New list is a valid result, not an error; distinguishing
// "source had no rows at all" happens upstream, before Select.
func Select(rows []listing.Row, prev state.IDSet, p Policy) Result {
	switch p.Kind {
	case Window:
		window := rows
		if p.K >= 0 && len(window) > p.K {
			window = window[:p.K]
		}

		res := Result{Persist: make(state.IDSet, len(window))}
		for _, r := range window {
			res.Persist[r.ID] = struct{}{}
			if !prev.Has(r.ID) {
				res.New = append(res.New, r)
			}
		}
		return res

	default: // Accumulate
		res := Result{Persist: make(state.IDSet, len(prev))}
		for id := range prev {
			res.Persist[id] = struct{}{}
		}
		for _, r := range rows {
			if prev.Has(r.ID) {
				continue
			}
			res.New = append(res.New, r)
			res.Persist[r.ID] = struct{}{}
		}
		return res
	}
}
