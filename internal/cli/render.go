package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/pipeline"
	"github.com/matzehuels/folio/pkg/work"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path (or base path for multiple formats)
	formats string  // comma-separated output formats: html, json
	width   float64 // container width the static layout is computed for
}

// renderCommand creates the render command for static exports.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the gallery as a static page",
		Long: `Export the gallery as a static page.

A static export has no server to re-balance against, so the columns are
computed once for --width (default from config) and kept at every window size.
Use -f json to also write the column assignment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, items, err := c.loadSite(cmd)
			if err != nil {
				return err
			}
			runner, err := pipeline.NewRunner(cfg, c.Logger)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), runner, items, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple), default index.<format>")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width in pixels (default from config)")

	return cmd
}

func runRender(ctx context.Context, runner *pipeline.Runner, items []work.Item, opts renderOpts) error {
	formats := pipeline.ParseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Loading...")
	spinner.Start()
	result, err := runner.Execute(ctx, items, pipeline.Options{
		Width:   opts.width,
		Formats: formats,
		Logger:  loggerFromContext(ctx),
		Progress: func(stage string) {
			spinner.SetMessage(stageMessage(stage))
		},
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	var written []string
	for _, format := range formats {
		path := outputPath(opts.output, format, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d items at %.0fpx", result.Stats.Items, result.Columns.Width)
	for _, path := range written {
		printFile(path)
	}
	printLayoutStats(result.Stats.Items, result.Columns.Heights, result.Stats.Imbalance)
	printNewline()
	printNextStep("Serve with live re-balancing", appName+" serve")
	return nil
}

// stageMessage turns a pipeline stage into spinner text.
func stageMessage(stage string) string {
	if stage == "layout" {
		return "Balancing columns..."
	}
	format, _ := strings.CutPrefix(stage, "render ")
	return "Rendering " + format + "..."
}

// outputPath derives the file written for format. A single format writes to
// output as given; multiple formats replace output's extension per format.
func outputPath(output, format string, multiple bool) string {
	if output == "" {
		return "index." + format
	}
	if !multiple {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}
