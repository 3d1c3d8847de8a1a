package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/masonry"
	"github.com/matzehuels/folio/pkg/site"
	"github.com/matzehuels/folio/pkg/work"
)

// Runner executes the pipeline for one site configuration.
//
// The Runner is stateless except for the configuration, renderer and logger -
// it doesn't store results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Config   *config.Config
	Balancer *masonry.Balancer
	Renderer *site.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil cfg uses the defaults; a nil logger uses
// log.Default().
func NewRunner(cfg *config.Config, logger *log.Logger) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	r, err := site.NewRenderer(site.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Runner{
		Config:   cfg,
		Balancer: cfg.Balancer(),
		Renderer: r,
		Logger:   logger,
	}, nil
}

// Execute runs the layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, items []work.Item, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	// Stage 1: Layout
	opts.Progress("layout")
	layoutStart := time.Now()
	cols := r.Balancer.LayoutContext(ctx, items, opts.Width)
	result.Columns = cols
	result.ETag = masonry.ETag(items, cols.Width)
	result.Stats.Items = cols.Len()
	result.Stats.Imbalance = cols.Imbalance()
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Debug("computed layout",
		"items", cols.Len(),
		"width", cols.Width,
		"imbalance", cols.Imbalance(),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opts.Progress("render " + format)
		data, err := r.render(format, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) render(format string, result *Result) ([]byte, error) {
	switch format {
	case FormatHTML:
		var buf bytes.Buffer
		err := r.Renderer.Page(&buf, site.Page{
			Title:   r.Config.Site.Title,
			Tagline: r.Config.Site.Tagline,
			Columns: result.Columns,
		})
		return buf.Bytes(), err
	case FormatJSON:
		l := result.Columns.Export()
		l.ETag = result.ETag
		return masonry.MarshalLayout(l)
	}
	return nil, ValidateFormat(format)
}
