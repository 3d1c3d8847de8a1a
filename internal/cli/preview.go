package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/masonry"
)

const (
	// defaultCellWidth is the number of CSS pixels one terminal column stands for.
	defaultCellWidth = 10.0

	// cellAspect is the height of a terminal cell relative to its width.
	cellAspect = 2.0

	previewGap    = 2
	previewChrome = 3 // header line, blank line, footer line
	minCardRows   = 2
)

// Preview styles
var (
	previewCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
	previewNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command, a terminal rendition of the
// gallery that re-balances on every terminal resize.
func (c *CLI) previewCommand() *cobra.Command {
	var cellWidth float64

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the two-column layout in the terminal",
		Long: `Preview the two-column layout in the terminal.

The terminal width stands in for the container width (--cell-width pixels per
column); resizing the terminal re-balances the columns exactly like resizing a
browser window. Card heights are drawn to scale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, items, err := c.loadSite(cmd)
			if err != nil {
				return err
			}
			if cellWidth <= 0 {
				cellWidth = defaultCellWidth
			}
			grid := masonry.NewGrid(cfg.Balancer(), items, cfg.Layout.DefaultWidth)
			return runPreview(cmd.Context(), newPreviewModel(grid, cfg.Site.Title, cellWidth))
		},
	}

	cmd.Flags().Float64Var(&cellWidth, "cell-width", defaultCellWidth, "pixels per terminal column")

	return cmd
}

func runPreview(ctx context.Context, m PreviewModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// =============================================================================
// PreviewModel - Live two-column preview
// =============================================================================

// PreviewModel is the bubbletea model for the layout preview.
type PreviewModel struct {
	Grid      *masonry.Grid
	Title     string
	CellWidth float64

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// newPreviewModel creates a preview over grid. The grid is resized on every
// terminal resize.
func newPreviewModel(grid *masonry.Grid, title string, cellWidth float64) PreviewModel {
	return PreviewModel{Grid: grid, Title: title, CellWidth: cellWidth}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vh := max(1, msg.Height-previewChrome)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vh)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vh
		}
		m.Grid.Resize(float64(msg.Width) * m.CellWidth)
		m.viewport.SetContent(m.renderColumns())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m PreviewModel) View() string {
	if !m.ready {
		return "Measuring terminal..."
	}

	var b strings.Builder
	cols := m.Grid.Columns()
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  %.0fpx · %d items · Δ %.0fpx · pass %d",
		cols.Width, cols.Len(), cols.Imbalance(), m.Grid.Passes())))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("↑/↓ scroll  resize to re-balance  q quit"))
	return b.String()
}

// renderColumns draws both columns side by side, cards scaled to their
// estimated heights.
func (m PreviewModel) renderColumns() string {
	cols := m.Grid.Columns()
	colWidth := max(12, (m.width-previewGap)/2)
	rowPx := m.CellWidth * cellAspect

	var rendered [2][]string
	for _, p := range cols.Placements {
		it := cols.Items[p.Column][p.Index]
		inner := colWidth - 4 // border + padding
		rows := max(minCardRows, int(math.Round(p.Height/rowPx))-2)

		body := previewNameStyle.Render(truncate(it.DisplayName(), inner)) + "\n" +
			kindStyle(p.Kind).Render(truncate(string(p.Kind), inner))
		card := previewCardStyle.Width(colWidth - 2).Height(rows).Render(body)
		rendered[p.Column] = append(rendered[p.Column], card)
	}

	left := lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rendered[0]...))
	right := lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rendered[1]...))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", previewGap), right)
}

// truncate shortens s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
