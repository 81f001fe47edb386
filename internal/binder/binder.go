// Package binder owns the page's query state and turns control events into
// synchronous evaluate-then-render cycles.
package binder

import (
	"log/slog"

	"github.com/couchcryptid/shelter-directory/internal/domain"
	"github.com/couchcryptid/shelter-directory/internal/render"
	"github.com/couchcryptid/shelter-directory/internal/store"
)

// Binder is the sole mutator of the Query State. Every event handler updates
// one field, evaluates, and renders before returning, so the last event
// handled always determines what is visible. A Binder is not safe for
// concurrent use; it belongs to one page's event loop.
type Binder struct {
	store    *store.Store
	records  []domain.Facility
	renderer *render.Renderer
	target   render.Target
	query    domain.Query
	logger   *slog.Logger
}

// New creates a Binder over a loaded (or failed) store.
func New(s *store.Store, r *render.Renderer, t render.Target, logger *slog.Logger) *Binder {
	return &Binder{
		store:    s,
		records:  s.All(),
		renderer: r,
		target:   t,
		query:    domain.NewQuery(),
		logger:   logger,
	}
}

// Start renders the page-load state.
func (b *Binder) Start() { b.refresh() }

// Search handles a change of the search box.
func (b *Binder) Search(term string) {
	b.query.Search = term
	b.refresh()
}

// Filter handles a change of a categorical control. domain.Any clears it.
func (b *Binder) Filter(dim domain.Dimension, value string) {
	b.query = b.query.With(dim, value)
	b.refresh()
}

// Sort handles a change of the sort control.
func (b *Binder) Sort(mode domain.SortMode) {
	b.query.Sort = mode
	b.refresh()
}

// Query returns a copy of the current Query State.
func (b *Binder) Query() domain.Query {
	return b.query.Clone()
}

// Options returns the selectable values for a categorical control.
func (b *Binder) Options(dim domain.Dimension) []string {
	return domain.Values(b.records, dim, b.renderer.Locale())
}

func (b *Binder) refresh() {
	if err := b.store.Err(); err != nil {
		if rerr := b.renderer.RenderUnavailable(b.target, err); rerr != nil {
			b.logger.Error("render unavailable state failed", "error", rerr)
		}
		return
	}

	result := domain.Evaluate(b.records, b.query)
	if _, err := b.renderer.Render(b.target, result, len(b.records)); err != nil {
		b.logger.Error("render failed", "error", err, "shown", len(result))
		return
	}
	b.logger.Debug("query applied",
		"search", b.query.Search,
		"sort", string(b.query.Sort),
		"shown", len(result),
		"total", len(b.records),
	)
}
