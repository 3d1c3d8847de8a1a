package masonry

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/work"
)

// Grid keeps the current column assignment for a changing item list and
// container width. It recomputes the full layout whenever either input actually
// changes and returns the previous assignment otherwise.
//
// Grid is safe for concurrent use. Updates are serialized, so the assignment
// observed after any sequence of updates is the one computed by the most recent
// pass.
type Grid struct {
	mu       sync.Mutex
	balancer *Balancer

	items       []work.Item
	fingerprint uint64
	width       float64
	cols        Columns
	passes      int
}

// NewGrid creates a Grid and computes its initial layout. A nil balancer uses
// the defaults.
func NewGrid(b *Balancer, items []work.Item, width float64) *Grid {
	if b == nil {
		b = New()
	}
	g := &Grid{balancer: b}
	g.items = slices.Clone(items)
	g.fingerprint = work.Fingerprint(g.items)
	g.width = b.ContainerWidth(width)
	g.recompute("initial")
	return g
}

// SetItems replaces the item list. It reports whether a new pass ran.
func (g *Grid) SetItems(items []work.Item) (Columns, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.update(items, g.width)
}

// Resize records a new container width. It reports whether a new pass ran.
func (g *Grid) Resize(width float64) (Columns, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.update(g.items, width)
}

// Update replaces both inputs at once. It reports whether a new pass ran.
func (g *Grid) Update(items []work.Item, width float64) (Columns, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.update(items, width)
}

// Columns returns the current assignment.
func (g *Grid) Columns() Columns {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cols
}

// Width returns the normalized container width of the current assignment.
func (g *Grid) Width() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width
}

// Items returns a copy of the current item list.
func (g *Grid) Items() []work.Item {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.items)
}

// Passes returns how many layout passes have run, including the initial one.
func (g *Grid) Passes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.passes
}

// update must be called with g.mu held.
func (g *Grid) update(items []work.Item, width float64) (Columns, bool) {
	fp := work.Fingerprint(items)
	w := g.balancer.ContainerWidth(width)

	itemsChanged := fp != g.fingerprint
	widthChanged := w != g.width
	if !itemsChanged && !widthChanged {
		return g.cols, false
	}

	if itemsChanged {
		g.items = slices.Clone(items)
		g.fingerprint = fp
	}
	g.width = w

	reason := "width"
	switch {
	case itemsChanged && widthChanged:
		reason = "items+width"
	case itemsChanged:
		reason = "items"
	}
	g.recompute(reason)
	return g.cols, true
}

func (g *Grid) recompute(reason string) {
	ctx := context.Background()
	if g.passes > 0 {
		observability.Layout().OnRecompute(ctx, reason)
	}
	g.cols = g.balancer.LayoutContext(ctx, g.items, g.width)
	g.passes++
}
