package run

import "errors"

// ErrNoListings means the fetched documents contained no qualifying
// table rows at all. That is an upstream schema change, not "no new
// jobs", and the run aborts without touching state or sending mail.
var ErrNoListings = errors.New("no listing rows found; upstream schema may have changed")
