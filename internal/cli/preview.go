package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// Canvas glyphs.
const (
	glyphNode = '●'
	glyphEdge = '·'
	glyphLink = ':'
)

var (
	previewTabStyle    = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	previewActiveStyle = StyleHighlight.Bold(true).Padding(0, 1)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// previewCommand creates the preview command, an interactive terminal
// view of a graph's layouts.
func (c *CLI) previewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [graph.json|graph.toml]",
		Short: "Browse layouts of a graph in the terminal",
		Long: `Browse layouts of a graph in the terminal.

Keys:
  tab, →, l        next algorithm
  shift+tab, ←, h  previous algorithm
  r                reseed
  q, esc           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.runPreview(cmd.Context(), args[0], noCache)
		},
	}

	addLayoutFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())
	cmd.Flags().Bool("no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, noCache bool) error {
	g, err := readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := c.cfg.Layout
	base.Logger = c.Logger
	base.SetDefaults()
	if err := base.Validate(); err != nil {
		return err
	}

	compute := func(alg layout.Algorithm, seed uint64) (*pipeline.Result, error) {
		opts := base
		opts.Algorithm = string(alg)
		opts.Seed = seed
		return runner.Layout(ctx, g, opts)
	}

	m := newPreviewModel(g, compute, layout.Algorithm(base.Algorithm), base.Seed)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// previewModel - Interactive layout browser
// =============================================================================

// computeFunc lays out the previewed graph with one algorithm and seed.
type computeFunc func(alg layout.Algorithm, seed uint64) (*pipeline.Result, error)

// layoutDoneMsg carries a finished layout back to the model.
type layoutDoneMsg struct {
	alg    layout.Algorithm
	seed   uint64
	result *pipeline.Result
	err    error
}

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	g          layout.Graph
	compute    computeFunc
	algorithms []layout.Algorithm
	current    int
	seed       uint64

	result  *pipeline.Result
	err     error
	pending bool

	width, height int
}

func newPreviewModel(g layout.Graph, compute computeFunc, alg layout.Algorithm, seed uint64) previewModel {
	m := previewModel{
		g:          g,
		compute:    compute,
		algorithms: layout.Algorithms(),
		seed:       seed,
		width:      80,
		height:     24,
	}
	for i, a := range m.algorithms {
		if a == alg {
			m.current = i
		}
	}
	return m
}

func (m previewModel) algorithm() layout.Algorithm {
	return m.algorithms[m.current]
}

// run returns the command computing the current layout.
func (m previewModel) run() tea.Cmd {
	alg, seed, compute := m.algorithm(), m.seed, m.compute
	return func() tea.Msg {
		res, err := compute(alg, seed)
		return layoutDoneMsg{alg: alg, seed: seed, result: res, err: err}
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.run()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.current = (m.current + 1) % len(m.algorithms)
		case "shift+tab", "left", "h":
			m.current = (m.current + len(m.algorithms) - 1) % len(m.algorithms)
		case "r":
			m.seed++
		default:
			return m, nil
		}
		m.pending = true
		return m, m.run()
	case layoutDoneMsg:
		if msg.alg != m.algorithm() || msg.seed != m.seed {
			return m, nil
		}
		m.pending = false
		m.result, m.err = msg.result, msg.err
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	tabs := make([]string, len(m.algorithms))
	for i, a := range m.algorithms {
		style := previewTabStyle
		if i == m.current {
			style = previewActiveStyle
		}
		tabs[i] = style.Render(string(a))
	}
	b.WriteString(StyleTitle.Render("arbor") + " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	side := m.statsTable()
	canvasW := max(m.width-lipgloss.Width(side)-4, 10)
	canvasH := max(m.height-6, 5)

	var body string
	switch {
	case m.err != nil:
		body = styleIconError.Render(iconError) + " " + m.err.Error()
	case m.result == nil:
		body = StyleDim.Render("computing...")
	default:
		body = strings.Join(drawCanvas(m.g, m.result.Positions, canvasW, canvasH, true), "\n")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, previewFrameStyle.Render(body), " ", side))
	b.WriteString("\n")

	status := fmt.Sprintf("seed %d", m.seed)
	if m.pending {
		status += " · computing"
	}
	b.WriteString(StyleDim.Render("tab/←/→ algorithm  r reseed  q quit  ·  " + status))

	return b.String()
}

// statsTable renders the statistics of the shown layout.
func (m previewModel) statsTable() string {
	rows := [][]string{{"algorithm", string(m.algorithm())}}
	if res := m.result; res != nil {
		status := iconFresh
		if res.CacheHit {
			status = iconCached
		}
		rows = append(rows,
			[]string{"nodes", fmt.Sprint(res.Stats.Vertices)},
			[]string{"edges", fmt.Sprint(res.Stats.Edges)},
			[]string{"isolated", fmt.Sprint(len(res.Isolated))},
			[]string{"iterations", fmt.Sprint(res.Stats.Iterations)},
			[]string{"time", res.Stats.Duration.String()},
			[]string{"result", status},
		)
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return StyleValue
		}).
		Render()
}

// =============================================================================
// Canvas
// =============================================================================

// drawCanvas draws g into a width x height character grid using the
// normalized positions in pos. Tree edges are dotted, cross-links drawn
// with colons and nodes marked with a dot followed by their label when
// labels is set. Nodes without a position are left out.
func drawCanvas(g layout.Graph, pos map[string]pipeline.Point, width, height int, labels bool) []string {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(id string) (int, int, bool) {
		p, ok := pos[id]
		if !ok || !g.Visible(id) || g.Collapsed(id) {
			return 0, 0, false
		}
		col := int(math.Round(clamp01(p.X) * float64(width-1)))
		row := int(math.Round(clamp01(p.Y) * float64(height-1)))
		return col, row, true
	}

	ids := g.NodeIDs()
	for _, id := range ids {
		x0, y0, ok := cell(id)
		if !ok {
			continue
		}
		for _, child := range g.Children(id) {
			if x1, y1, ok := cell(child); ok {
				drawLine(grid, x0, y0, x1, y1, glyphEdge)
			}
		}
		for _, to := range g.Links(id) {
			if x1, y1, ok := cell(to); ok {
				drawLine(grid, x0, y0, x1, y1, glyphLink)
			}
		}
	}

	for _, id := range ids {
		x, y, ok := cell(id)
		if !ok {
			continue
		}
		grid[y][x] = glyphNode
		if !labels {
			continue
		}
		for i, r := range []rune(g.Label(id)) {
			if x+1+i >= width {
				break
			}
			grid[y][x+1+i] = r
		}
	}

	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

// drawLine draws the interior cells of the segment between two cells with
// Bresenham's algorithm. The end cells are left for the node markers.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, glyph rune) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	x, y := x0, y0
	for {
		if (x != x0 || y != y0) && (x != x1 || y != y1) {
			grid[y][x] = glyph
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
