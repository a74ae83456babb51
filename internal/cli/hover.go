package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/meta"
	"github.com/matzehuels/plotline/pkg/pipeline"
)

// List styles
var (
	hintSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	hintDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// hoverCommand creates the hover command for exploring hints in the
// terminal. It walks the distinct plotted x values the same way the
// rendered chart's hover does, one snap position at a time.
func (c *CLI) hoverCommand() *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "hover [file]",
		Short: "Explore hover hints interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			defer runner.Close()

			def, err := runner.Decode(pipeline.Options{
				Input:  args[0],
				Width:  width,
				Height: height,
			})
			if err != nil {
				return err
			}

			m := meta.Assemble(def)
			if len(m.XValues()) == 0 {
				printError("Chart has no plotted points")
				return nil
			}

			model := NewHintModel(def.Title, m)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "plot width for charts without an explicit x length")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "plot height for charts without an explicit y length")

	return cmd
}

// =============================================================================
// HintModel - Interactive Hint Explorer
// =============================================================================

// HintModel is the bubbletea model for walking hover hints.
type HintModel struct {
	Title  string
	Meta   *meta.Meta
	Cursor int // index into Meta.XValues()
	Width  int // terminal width
}

// NewHintModel creates a hint explorer over the assembled layout.
func NewHintModel(title string, m *meta.Meta) HintModel {
	return HintModel{Title: title, Meta: m}
}

func (m HintModel) Init() tea.Cmd {
	return nil
}

func (m HintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l":
			if m.Cursor < len(m.Meta.XValues())-1 {
				m.Cursor++
			}
		case "home":
			m.Cursor = 0
		case "end":
			m.Cursor = len(m.Meta.XValues()) - 1
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m HintModel) View() string {
	var b strings.Builder

	title := m.Title
	if title == "" {
		title = "Hover Hints"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(hintDimStyle.Render("←/→ move  home/end jump  q quit"))
	b.WriteString("\n\n")

	xs := m.Meta.XValues()
	x := xs[m.Cursor]
	hint := m.Meta.HintAt(x)
	px := m.Meta.ToCanvas(chart.Point{X: x}).X

	b.WriteString(hintSelectedStyle.Render(fmt.Sprintf("x = %g", x)))
	b.WriteString(hintDimStyle.Render(fmt.Sprintf("  (pixel %.1f)", px)))
	b.WriteString("\n\n")

	rows := [][]string{}
	for _, v := range hint.YValues {
		value := "no data"
		if v.Present {
			value = fmt.Sprintf("%g", v.Value)
		}
		rows = append(rows, []string{v.Series, value})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Series", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(hint.YValues) && !hint.YValues[row].Present {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(hintDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(xs))))

	return b.String()
}
