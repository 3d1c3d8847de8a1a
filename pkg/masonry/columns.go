package masonry

import (
	"math"

	"github.com/matzehuels/folio/pkg/media"
	"github.com/matzehuels/folio/pkg/work"
)

// Placement records where one item landed in a pass.
type Placement struct {
	ID     string
	Column int        // 0 or 1
	Index  int        // position within the column
	Top    float64    // estimated offset from the column top
	Height float64    // estimated card height
	Kind   media.Kind // classification used for the estimate
}

// Columns is the result of one layout pass.
type Columns struct {
	Width       float64 // container width used
	ColumnWidth float64
	Gutter      float64

	Items   [2][]work.Item
	Heights [2]float64

	// Placements holds one entry per input item, in input order.
	Placements []Placement
}

// RenderFunc renders one item. column is 0 or 1.
type RenderFunc func(column int, item work.Item) error

// Column returns the items of column i (0 or 1) in order.
func (c Columns) Column(i int) []work.Item {
	if i < 0 || i > 1 {
		return nil
	}
	return c.Items[i]
}

// Len returns the total number of placed items.
func (c Columns) Len() int { return len(c.Items[0]) + len(c.Items[1]) }

// Imbalance returns the absolute difference between the column heights.
func (c Columns) Imbalance() float64 { return math.Abs(c.Heights[0] - c.Heights[1]) }

// MaxItemHeight returns the tallest single estimate in the pass.
func (c Columns) MaxItemHeight() float64 {
	var m float64
	for _, p := range c.Placements {
		m = math.Max(m, p.Height)
	}
	return m
}

// Assignment returns the column of each input item, in input order.
func (c Columns) Assignment() []int {
	a := make([]int, len(c.Placements))
	for i, p := range c.Placements {
		a[i] = p.Column
	}
	return a
}

// Render calls fn once per item: column 0 top to bottom, then column 1. It stops
// at the first error.
func (c Columns) Render(fn RenderFunc) error {
	for col := range c.Items {
		for _, it := range c.Items[col] {
			if err := fn(col, it); err != nil {
				return err
			}
		}
	}
	return nil
}
