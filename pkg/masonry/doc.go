// Package masonry distributes work items into two height-balanced columns.
//
// # Overview
//
// A masonry gallery stacks cards of different heights in columns. The browser
// cannot measure a card before it is rendered, so the layout estimates each
// card's height from its media kind alone:
//
//	columnWidth = (containerWidth - gutter) / 2
//	height      = columnWidth * kind.AspectRatio() / 100 + textBlockHeight
//
// and then walks the items once, in input order, appending each one to the
// column that is currently shorter (ties go to column 0).
//
// # Guarantees
//
// For any input and any container width, a [Balancer] pass:
//
//   - Partitions the input: every item lands in exactly one column.
//   - Preserves relative input order within each column.
//   - Is deterministic: the same items and width give the same assignment.
//   - Leaves the two column heights at most one item height apart.
//
// The balancing is greedy and approximate; no bin-packing optimality is sought.
//
// # Degenerate Widths
//
// A zero, negative, NaN or infinite container width is replaced by the
// balancer's default width (800 unless configured), so estimates stay finite
// and positive.
//
// # Recomputation
//
// [Grid] owns the reactive side: it keeps the last assignment and recomputes it,
// fully and synchronously, only when the item content or the container width
// changes. Concurrent updates are serialized; the latest completed pass wins.
package masonry
