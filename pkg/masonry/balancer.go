package masonry

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/folio/pkg/media"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/work"
)

const (
	// DefaultWidth replaces zero or unavailable container widths.
	DefaultWidth = 800.0

	// DefaultTextBlockHeight is the estimated height of a card's title and
	// description block. It is a constant, not a measurement.
	DefaultTextBlockHeight = 56.0

	// MaxWidth bounds container widths and the other pixel settings. Larger
	// values are clamped so height sums stay finite.
	MaxWidth = 1e6
)

// Option configures a Balancer.
type Option func(*Balancer)

// WithGutter sets the horizontal space between the two columns. Negative values
// are treated as zero, values above MaxWidth as MaxWidth.
func WithGutter(px float64) Option {
	return func(b *Balancer) { b.gutter = clampPx(px) }
}

// WithTextBlockHeight sets the per-card text block estimate. Negative values are
// treated as zero, values above MaxWidth as MaxWidth.
func WithTextBlockHeight(px float64) Option {
	return func(b *Balancer) { b.textBlockHeight = clampPx(px) }
}

// WithDefaultWidth sets the container width used when the real one is unknown.
// Non-positive values are ignored; values above MaxWidth are clamped.
func WithDefaultWidth(px float64) Option {
	return func(b *Balancer) {
		if finite(px) && px > 0 {
			b.defaultWidth = math.Min(px, MaxWidth)
		}
	}
}

// Balancer assigns items to two columns. A Balancer holds only configuration and
// is safe for concurrent use.
type Balancer struct {
	gutter          float64
	textBlockHeight float64
	defaultWidth    float64
}

// New creates a Balancer with the given options applied over the defaults.
func New(opts ...Option) *Balancer {
	b := &Balancer{
		textBlockHeight: DefaultTextBlockHeight,
		defaultWidth:    DefaultWidth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Gutter returns the configured gutter.
func (b *Balancer) Gutter() float64 { return b.gutter }

// TextBlockHeight returns the configured text block estimate.
func (b *Balancer) TextBlockHeight() float64 { return b.textBlockHeight }

// DefaultWidth returns the fallback container width.
func (b *Balancer) DefaultWidth() float64 { return b.defaultWidth }

// ContainerWidth normalizes a reported container width, substituting the default
// for zero, negative and non-finite values and clamping to MaxWidth.
func (b *Balancer) ContainerWidth(w float64) float64 {
	if !finite(w) || w <= 0 {
		return b.defaultWidth
	}
	return math.Min(w, MaxWidth)
}

// ColumnWidth returns the width of one column for a container width. The gutter
// is ignored when it would leave no room for the columns.
func (b *Balancer) ColumnWidth(containerWidth float64) float64 {
	w := b.ContainerWidth(containerWidth)
	if cw := (w - b.gutter) / 2; cw > 0 {
		return cw
	}
	return w / 2
}

// Estimate returns the estimated rendered height of a single card.
func (b *Balancer) Estimate(it work.Item, containerWidth float64) float64 {
	return b.estimate(media.Classify(it.Media), b.ColumnWidth(containerWidth))
}

func (b *Balancer) estimate(kind media.Kind, columnWidth float64) float64 {
	return columnWidth*kind.AspectRatio()/100 + b.textBlockHeight
}

// Layout distributes items into two columns for the given container width.
// Each item is classified fresh; nothing is cached between passes.
func (b *Balancer) Layout(items []work.Item, containerWidth float64) Columns {
	width := b.ContainerWidth(containerWidth)
	colWidth := b.ColumnWidth(width)

	cols := Columns{
		Width:       width,
		ColumnWidth: colWidth,
		Gutter:      b.gutter,
		Placements:  make([]Placement, 0, len(items)),
	}

	for _, it := range items {
		kind := media.Classify(it.Media)
		h := b.estimate(kind, colWidth)

		target := 0
		if cols.Heights[1] < cols.Heights[0] {
			target = 1
		}

		cols.Items[target] = append(cols.Items[target], it)
		cols.Placements = append(cols.Placements, Placement{
			ID:     it.ID,
			Column: target,
			Index:  len(cols.Items[target]) - 1,
			Top:    cols.Heights[target],
			Height: h,
			Kind:   kind,
		})
		cols.Heights[target] += h
	}

	return cols
}

// LayoutContext is Layout with observability hooks around the pass.
func (b *Balancer) LayoutContext(ctx context.Context, items []work.Item, containerWidth float64) Columns {
	hooks := observability.Layout()
	width := b.ContainerWidth(containerWidth)
	hooks.OnLayoutStart(ctx, len(items), width)

	start := time.Now()
	cols := b.Layout(items, width)

	hooks.OnLayoutComplete(ctx, observability.LayoutStats{
		Items:     len(items),
		Width:     width,
		Heights:   cols.Heights,
		Imbalance: cols.Imbalance(),
		Duration:  time.Since(start),
	})
	return cols
}

// clampPx maps NaN and negatives to zero and caps at MaxWidth.
func clampPx(px float64) float64 {
	if math.IsNaN(px) || px < 0 {
		return 0
	}
	return math.Min(px, MaxWidth)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
