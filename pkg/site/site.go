// Package site renders work items as HTML.
//
// The renderer is the callback side of the two-column layout: the balancer
// decides which column each item goes to, and [Renderer.Gallery] walks the
// result with [masonry.Columns.Render], emitting one card per item. Cards are
// rendered from the same [media.Resolve] classification the balancer used for
// its height estimate, so a card's aspect-ratio box always matches the space
// the layout reserved for it.
//
// Templates are embedded in the binary and all output goes through
// html/template, so item text and media URLs are escaped for their context.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/buildinfo"
	"github.com/matzehuels/folio/pkg/masonry"
	"github.com/matzehuels/folio/pkg/media"
	"github.com/matzehuels/folio/pkg/work"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders cards, galleries and full pages. A Renderer is safe for
// concurrent use.
type Renderer struct {
	tmpl   *template.Template
	logger *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report cards whose media could not be
// embedded.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer parses the embedded templates.
func NewRenderer(opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r := &Renderer{
		tmpl:   tmpl,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// card is the template view of one work item.
type card struct {
	ID          string
	Name        string
	Description string
	Media       media.Media

	// FrameTitle is the iframe title: the item name, else the embed's default.
	FrameTitle string
	Alt        string
}

func newCard(it work.Item) card {
	m := media.Resolve(it.Media)
	c := card{
		ID:          it.ID,
		Name:        it.DisplayName(),
		Description: it.DisplayDescription(),
		Media:       m,
		Alt:         it.Name,
	}
	c.FrameTitle = it.Name
	if c.FrameTitle == "" && m.Embed != nil {
		c.FrameTitle = m.Embed.Title
	}
	return c
}

// Card renders a single work card.
func (r *Renderer) Card(w io.Writer, it work.Item) error {
	c := newCard(it)
	if it.HasMedia() && !c.Media.Renderable() {
		r.logger.Debug("unresolvable embed", "id", it.ID, "kind", c.Media.Kind, "url", it.Media)
	}
	if err := r.tmpl.ExecuteTemplate(w, "card", c); err != nil {
		return fmt.Errorf("render card %s: %w", it.ID, err)
	}
	return nil
}

// Gallery renders the two-column markup for a layout pass. Both columns are
// always present, even when empty.
func (r *Renderer) Gallery(w io.Writer, cols masonry.Columns) error {
	if err := r.tmpl.ExecuteTemplate(w, "columns-open", cols); err != nil {
		return err
	}

	current := 0
	if err := r.tmpl.ExecuteTemplate(w, "column-open", current); err != nil {
		return err
	}

	err := cols.Render(func(column int, it work.Item) error {
		for current < column {
			if err := r.advanceColumn(w, &current); err != nil {
				return err
			}
		}
		return r.Card(w, it)
	})
	if err != nil {
		return err
	}

	for current < 1 {
		if err := r.advanceColumn(w, &current); err != nil {
			return err
		}
	}
	if err := r.tmpl.ExecuteTemplate(w, "column-close", nil); err != nil {
		return err
	}
	return r.tmpl.ExecuteTemplate(w, "columns-close", nil)
}

func (r *Renderer) advanceColumn(w io.Writer, current *int) error {
	if err := r.tmpl.ExecuteTemplate(w, "column-close", nil); err != nil {
		return err
	}
	*current++
	return r.tmpl.ExecuteTemplate(w, "column-open", *current)
}

// Page holds the inputs of a full gallery page.
type Page struct {
	Title   string
	Tagline string
	Columns masonry.Columns

	// FragmentPath is the URL the page fetches re-balanced columns from when
	// the window is resized. Empty for static exports, which keep the layout
	// they were rendered with.
	FragmentPath string
}

type pageView struct {
	Title        string
	Tagline      string
	Version      string
	Width        float64
	Gutter       float64
	FragmentPath string
	Gallery      template.HTML
}

// Page renders a complete HTML document.
func (r *Renderer) Page(w io.Writer, p Page) error {
	var gallery bytes.Buffer
	if err := r.Gallery(&gallery, p.Columns); err != nil {
		return err
	}

	v := pageView{
		Title:        p.Title,
		Tagline:      p.Tagline,
		Version:      buildinfo.Version,
		Width:        p.Columns.Width,
		Gutter:       p.Columns.Gutter,
		FragmentPath: p.FragmentPath,
		Gallery:      template.HTML(gallery.String()),
	}
	if err := r.tmpl.ExecuteTemplate(w, "page", v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
