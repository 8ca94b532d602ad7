// Package state persists the set of listing IDs that were already
// notified. Membership is the only contract: order never matters, and a
// Save fully replaces whatever was stored before.
package state

import (
	"context"
	"errors"
)

// ErrCorrupt marks state that exists but cannot be read. A missing
// store is the normal first-run condition and loads as an empty set; a
// corrupt one must abort the run, otherwise every known posting would
// be re-notified.
var ErrCorrupt = errors.New("state is corrupt")

// IDSet is the in-memory form of persisted state.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Store loads and replaces the persisted ID set. Save must be atomic
// from the caller's side: a later Load sees either the old set or the
// new one, never a partial write.
type Store interface {
	Load(ctx context.Context) (IDSet, error)
	Save(ctx context.Context, ids IDSet) error
}
