// Package run drives one complete invocation: fetch, extract, select,
// notify, persist. A run either completes (state written) or aborts
// before persisting, leaving prior state untouched.
package run

import (
	"context"
	"fmt"

	"jobdigest/internal/config"
	"jobdigest/internal/digest"
	"jobdigest/internal/extract"
	"jobdigest/internal/fetch"
	"jobdigest/internal/listing"
	"jobdigest/internal/mail"
	"jobdigest/internal/novelty"
	"jobdigest/internal/state"
	"jobdigest/pkg/logging"
)

type Deps struct {
	Cfg      config.Config
	Fetcher  *fetch.Client
	Store    state.Store
	Renderer *digest.Renderer
	Sender   mail.Sender
	AgeParse listing.AgeParser
	Log      *logging.Logger
}

// Report summarizes a completed run.
type Report struct {
	TotalRows int
	NewRows   int
	Persisted int
}

type Runner struct {
	d Deps
}

func New(d Deps) *Runner {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.AgeParse == nil {
		d.AgeParse = listing.ParseAge
	}
	return &Runner{d: d}
}

// Once executes a single run. State is persisted only after the send is
// confirmed: a delivery failure aborts with prior state intact, so the
// pending notification goes out on the next scheduled run instead of
// being silently dropped.
func (r *Runner) Once(ctx context.Context) (Report, error) {
	var rep Report

	sources := make([]fetch.Source, 0, len(r.d.Cfg.Sources))
	for _, s := range r.d.Cfg.Sources {
		sources = append(sources, fetch.Source{Name: s.Name, URL: s.URL})
	}

	docs, err := r.d.Fetcher.FetchAll(ctx, sources)
	if err != nil {
		return rep, err
	}

	rows, err := r.extractRows(docs)
	if err != nil {
		return rep, err
	}
	if len(rows) == 0 {
		return rep, ErrNoListings
	}
	rep.TotalRows = len(rows)

	listing.SortRows(rows)

	prev, err := r.d.Store.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("load state: %w", err)
	}

	res := novelty.Select(rows, prev, r.policy())
	rep.NewRows = len(res.New)
	rep.Persisted = len(res.Persist)

	subject, body := r.compose(res.New)
	if err := r.d.Sender.Send(ctx, subject, body); err != nil {
		return rep, fmt.Errorf("deliver digest: %w", err)
	}

	if err := r.d.Store.Save(ctx, res.Persist); err != nil {
		return rep, fmt.Errorf("save state: %w", err)
	}

	r.d.Log.Info("run complete",
		"total", rep.TotalRows, "new", rep.NewRows, "persisted", rep.Persisted)
	return rep, nil
}

// extractRows renders and walks every document sequentially, then
// drops duplicate IDs across sources, keeping the first (newest-sorted
// later, but first-seen here) occurrence.
func (r *Runner) extractRows(docs []fetch.Document) ([]listing.Row, error) {
	var rows []listing.Row
	seen := map[string]struct{}{}

	for _, doc := range docs {
		html, err := extract.RenderMarkdown(doc.Body)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", doc.Source.Name, err)
		}
		raws, err := extract.Rows(html)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", doc.Source.Name, err)
		}

		for _, raw := range raws {
			row := listing.Finalize(listing.FromRaw(raw), r.d.AgeParse)
			if _, dup := seen[row.ID]; dup {
				continue
			}
			seen[row.ID] = struct{}{}
			rows = append(rows, row)
		}

		r.d.Log.Debug("extracted source", "source", doc.Source.Name, "rows", len(raws))
	}

	return rows, nil
}

func (r *Runner) policy() novelty.Policy {
	if r.d.Cfg.State.Policy == "accumulate" {
		return novelty.Policy{Kind: novelty.Accumulate}
	}
	return novelty.Policy{Kind: novelty.Window, K: r.d.Cfg.State.Window}
}

func (r *Runner) compose(newRows []listing.Row) (subject, body string) {
	prefix := r.d.Cfg.Digest.SubjectPrefix
	if len(newRows) == 0 {
		return fmt.Sprintf("%s No new jobs since last check", prefix), r.d.Renderer.NoNew()
	}

	subject = fmt.Sprintf("%s %d new roles", prefix, len(newRows))
	title := fmt.Sprintf("%d new roles since last check", len(newRows))
	return subject, r.d.Renderer.Latest(title, newRows)
}
