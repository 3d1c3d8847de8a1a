// Package pkg provides the core libraries for Folio portfolio galleries.
//
// # Overview
//
// Folio turns a list of work items (a name, an optional description and a
// media URL) into a two-column masonry gallery whose columns stay balanced at
// every container width. The pkg directory is organized into three areas:
//
//  1. Domain logic: [media], [work] and [masonry]
//  2. Presentation: [site] and [pipeline]
//  3. Infrastructure: [config], [server], [cache], [observability], [errors]
//
// # Architecture
//
// The typical data flow through Folio:
//
//	folio.toml + content file
//	         ↓
//	    [config] / [work] packages (load and normalize items)
//	         ↓
//	    [media] package (classify URLs, resolve embeds)
//	         ↓
//	    [masonry] package (estimate heights, balance two columns)
//	         ↓
//	    [site] package (HTML cards, gallery fragment, page)
//	         ↓
//	    [server] (live, re-balanced on resize) or [pipeline] (static export)
//
// # Quick Start
//
// Balance and render a gallery for a 1200px container:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/folio/pkg/masonry"
//	    "github.com/matzehuels/folio/pkg/site"
//	    "github.com/matzehuels/folio/pkg/work"
//	)
//
//	items, _ := work.Import("work.json")
//	cols := masonry.New(masonry.WithGutter(20)).Layout(items, 1200)
//
//	r, _ := site.NewRenderer()
//	_ = r.Gallery(os.Stdout, cols)
//
// # Main Packages
//
// [media] - Classifies media URLs into a closed set of kinds and resolves each
// kind into an embed (video, iframe or image) with a fixed aspect ratio.
//
// [work] - The work item type, content file import (TOML and JSON) and item
// fingerprints.
//
// [masonry] - Greedy two-column balancing over estimated card heights. A
// [masonry.Grid] keeps the assignment for a changing width and item list and
// recomputes only when either actually changes.
//
// [site] - html/template rendering of cards, the two-column fragment and the
// full page with its resize script.
//
// [pipeline] - Static export (layout → render) shared by the render command.
//
// [server] - chi HTTP server that re-balances per requested width, with ETags
// and an LRU response [cache].
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/masonry/...      # Specific package
//
// [media]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/media
// [work]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/work
// [masonry]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/masonry
// [masonry.Grid]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/masonry#Grid
// [site]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/site
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/errors
package pkg
