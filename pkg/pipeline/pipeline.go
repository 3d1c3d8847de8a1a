// Package pipeline provides the layout → render pipeline for folio.
//
// The server renders per request. Static exports and the CLI go through a
// [Runner] instead, which balances the columns once for a given width and
// produces every requested artifact from that single pass:
//
//	runner, err := pipeline.NewRunner(cfg, logger)
//	result, err := runner.Execute(ctx, items, pipeline.Options{
//	    Width:   1200,
//	    Formats: []string{pipeline.FormatHTML, pipeline.FormatJSON},
//	})
//	html := result.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/masonry"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
}

// Options contains the configuration of one pipeline run.
type Options struct {
	// Width is the container width. Zero uses the balancer's default width.
	Width float64 `json:"width,omitempty"`

	// Formats lists the artifacts to produce. Defaults to html.
	Formats []string `json:"formats,omitempty"`

	// Logger receives stage timings. Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`

	// Progress, when set, is called as each stage starts ("layout", then
	// "render <format>" per format).
	Progress func(stage string) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Columns is the layout pass the artifacts were rendered from.
	Columns masonry.Columns

	// ETag identifies the (items, width) pair the result was computed for.
	ETag string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Imbalance  float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list. Empty input yields html.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatHTML}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative, got %v", o.Width)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Progress == nil {
		o.Progress = func(string) {}
	}
	o.validated = true
	return nil
}

// String summarizes the options for log lines.
func (o Options) String() string {
	return fmt.Sprintf("width=%v formats=%s", o.Width, strings.Join(o.Formats, ","))
}
