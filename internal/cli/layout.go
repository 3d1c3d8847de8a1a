package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/masonry"
	"github.com/matzehuels/folio/pkg/work"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	widths []float64 // container widths, applied in order
	gutter float64   // overrides the configured gutter when set
	format string    // table or json
}

// layoutCommand creates the layout command for inspecting column assignments.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the column assignment for one or more widths",
		Long: `Print the column assignment for one or more container widths.

Widths are applied in order to a single grid, the way a browser window is
resized: a width that normalizes to the current one does not trigger a new
layout pass.`,
		Example: `  folio layout --width 1200 --width 800 --width 400
  folio layout --gutter 24 -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatTable && opts.format != formatJSON {
				return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be table or json)", opts.format)
			}
			cfg, items, err := c.loadSite(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("gutter") {
				cfg.Layout.Gutter = opts.gutter
				if err := cfg.Revalidate(); err != nil {
					return err
				}
			}
			return runLayout(cmd.OutOrStdout(), cfg.Balancer(), items, opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.widths, "width", nil, "container width in pixels (repeatable, default from config)")
	cmd.Flags().Float64Var(&opts.gutter, "gutter", 0, "space between columns in pixels")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json")

	return cmd
}

func runLayout(w io.Writer, b *masonry.Balancer, items []work.Item, opts layoutOpts) error {
	widths := opts.widths
	if len(widths) == 0 {
		widths = []float64{b.DefaultWidth()}
	}

	grid := masonry.NewGrid(b, items, widths[0])
	var layouts []masonry.Layout

	for i, width := range widths {
		cols, changed := grid.Resize(width)
		if i == 0 {
			changed = true
		}

		if opts.format == formatJSON {
			l := cols.Export()
			l.ETag = masonry.ETag(items, cols.Width)
			layouts = append(layouts, l)
			continue
		}

		title := fmt.Sprintf("%.0fpx", cols.Width)
		if !changed {
			title += StyleDim.Render(" (unchanged)")
		}
		fmt.Fprintln(w, StyleTitle.Render("Layout")+" "+StyleNumber.Render(title))
		fmt.Fprintln(w, layoutTable(cols))
		printLayoutStats(cols.Len(), cols.Heights, cols.Imbalance())
		printNewline()
	}

	if opts.format == formatJSON {
		return writeJSON(w, layouts)
	}
	printDetail("%d layout passes for %d widths", grid.Passes(), len(widths))
	return nil
}

// layoutTable renders one pass as a table in input order.
func layoutTable(cols masonry.Columns) string {
	rows := make([][]string, 0, len(cols.Placements))
	for i, p := range cols.Placements {
		it := cols.Items[p.Column][p.Index]
		column := "left"
		if p.Column == 1 {
			column = "right"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			it.ID,
			truncate(it.DisplayName(), 28),
			string(p.Kind),
			column,
			strconv.FormatFloat(p.Top, 'f', 0, 64),
			strconv.FormatFloat(p.Height, 'f', 0, 64),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Name", "Kind", "Column", "Top", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0, 5, 6:
				return cell.Foreground(colorGray).Align(lipgloss.Right)
			case 4:
				if rows[row][4] == "left" {
					return cell.Foreground(colorCyan)
				}
				return cell.Foreground(colorGreen)
			}
			return cell
		})

	return t.Render()
}
