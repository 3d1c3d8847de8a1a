// Package config loads the folio site configuration.
//
// Configuration lives in a single TOML file (folio.toml by default):
//
//	content = "work.json"   # optional; otherwise [[work]] tables below
//
//	[site]
//	title = "Jane Doe"
//	tagline = "Selected work"
//
//	[layout]
//	gutter = 24
//	text_block_height = 56
//	default_width = 800
//
//	[server]
//	addr = ":8080"
//	cache_size = 256
//
//	[[work]]
//	name = "Reel"
//	media = "https://youtu.be/abc123"
//
// Zero values are replaced by defaults in [Config.ValidateAndSetDefaults].
// Command-line flags override file values, followed by [Config.Revalidate].
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/masonry"
	"github.com/matzehuels/folio/pkg/work"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFile is the configuration file looked up when none is given.
	DefaultFile = "folio.toml"

	// DefaultTitle is the page title used when the site has none.
	DefaultTitle = "Portfolio"

	// DefaultAddr is the server listen address.
	DefaultAddr = ":8080"

	// DefaultCacheSize is the number of rendered galleries kept in memory.
	DefaultCacheSize = 256
)

// =============================================================================
// Config
// =============================================================================

// Config is the complete site configuration.
type Config struct {
	Site   Site   `toml:"site"`
	Layout Layout `toml:"layout"`
	Server Server `toml:"server"`

	// Content is an optional path to a .toml or .json content file. Relative
	// paths are resolved against the configuration file's directory.
	Content string `toml:"content"`

	// Work holds inline items. It is ignored when Content is set.
	Work []work.Item `toml:"work"`

	// dir is the directory of the loaded file.
	dir string

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Site holds page-level text.
type Site struct {
	Title   string `toml:"title"`
	Tagline string `toml:"tagline"`
}

// Layout holds the column balancer settings.
type Layout struct {
	Gutter          float64 `toml:"gutter"`
	TextBlockHeight float64 `toml:"text_block_height"`
	DefaultWidth    float64 `toml:"default_width"`
}

// Server holds the HTTP server settings.
type Server struct {
	Addr string `toml:"addr"`

	// CacheSize bounds the rendered-gallery cache. Negative disables caching.
	CacheSize int `toml:"cache_size"`
}

// Default returns a configuration with every default applied and no items.
func Default() *Config {
	c := &Config{}
	_ = c.ValidateAndSetDefaults()
	return c
}

// Load reads and validates the configuration file at path.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.dir = filepath.Dir(path)
	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// ValidateAndSetDefaults checks field ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}

	c.Site.Title = strings.TrimSpace(c.Site.Title)
	if c.Site.Title == "" {
		c.Site.Title = DefaultTitle
	}

	if err := c.Layout.validate(); err != nil {
		return err
	}
	if c.Layout.TextBlockHeight == 0 {
		c.Layout.TextBlockHeight = masonry.DefaultTextBlockHeight
	}
	if c.Layout.DefaultWidth == 0 {
		c.Layout.DefaultWidth = masonry.DefaultWidth
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if err := ferrors.ValidateListenAddr(c.Server.Addr); err != nil {
		return err
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = DefaultCacheSize
	}

	c.validated = true
	return nil
}

// Revalidate validates again after fields were changed, for example by
// command-line flags overriding file values.
func (c *Config) Revalidate() error {
	c.validated = false
	return c.ValidateAndSetDefaults()
}

func (l Layout) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"layout.gutter", l.Gutter},
		{"layout.text_block_height", l.TextBlockHeight},
		{"layout.default_width", l.DefaultWidth},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "%s must be a non-negative number, got %v", f.name, f.value)
		}
		if f.value > masonry.MaxWidth {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "%s must be at most %v, got %v", f.name, masonry.MaxWidth, f.value)
		}
	}
	return nil
}

// Balancer returns a column balancer configured from the layout section.
func (c *Config) Balancer() *masonry.Balancer {
	return masonry.New(
		masonry.WithGutter(c.Layout.Gutter),
		masonry.WithTextBlockHeight(c.Layout.TextBlockHeight),
		masonry.WithDefaultWidth(c.Layout.DefaultWidth),
	)
}

// ContentPath returns the resolved content file path, or "" for inline items.
func (c *Config) ContentPath() string {
	if c.Content == "" {
		return ""
	}
	if filepath.IsAbs(c.Content) || c.dir == "" {
		return c.Content
	}
	return filepath.Join(c.dir, c.Content)
}

// Items loads the configured work items, either from the content file or from
// the inline [[work]] tables.
func (c *Config) Items() ([]work.Item, error) {
	if path := c.ContentPath(); path != "" {
		return work.Import(path)
	}
	items, err := work.Normalize(c.Work)
	if err != nil {
		return nil, fmt.Errorf("inline work: %w", err)
	}
	return items, nil
}
