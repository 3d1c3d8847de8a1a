package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/buildinfo"
	"github.com/matzehuels/folio/pkg/config"
	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/work"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "folio"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath and contentPath are bound to persistent root flags.
	configPath  string
	contentPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Folio renders a portfolio as a balanced two-column gallery",
		Long:         `Folio is a CLI tool for serving and exporting a personal portfolio: media URLs are classified into embeddable kinds and the work cards are balanced across two masonry columns.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultFile, "site configuration file")
	root.PersistentFlags().StringVar(&c.contentPath, "content", "", "content file (.toml or .json), overrides the configured content")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Site Loading
// =============================================================================

// loadConfig reads the configuration file. A missing default file is not an
// error: the defaults are used instead, so a bare content file is enough to
// run every command.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err == nil {
		return cfg, nil
	}
	explicit := cmd.Flags().Changed("config")
	if !explicit && ferrors.Is(err, ferrors.ErrCodeFileNotFound) {
		c.Logger.Debug("no config file, using defaults", "path", c.configPath)
		return config.Default(), nil
	}
	return nil, err
}

// loadSite loads the configuration and the work items it points to.
func (c *CLI) loadSite(cmd *cobra.Command) (*config.Config, []work.Item, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if c.contentPath != "" {
		// Flag paths are relative to the working directory, not the config file.
		abs, err := filepath.Abs(c.contentPath)
		if err != nil {
			return nil, nil, err
		}
		cfg.Content = abs
	}

	prog := newProgress(c.Logger)
	items, err := cfg.Items()
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 && cfg.ContentPath() == "" {
		if _, statErr := os.Stat(c.configPath); errors.Is(statErr, os.ErrNotExist) {
			return nil, nil, ferrors.New(ferrors.ErrCodeFileNotFound, "no content: create %s or pass --content", c.configPath)
		}
	}
	prog.done(fmt.Sprintf("Loaded %d work items", len(items)))
	return cfg, items, nil
}
