package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treezoom/pkg/pipeline"
	"github.com/matzehuels/treezoom/pkg/render/treemap/reconcile"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
	"github.com/matzehuels/treezoom/pkg/view"
)

// frameInterval paces animation ticks while a transition is running.
const frameInterval = time.Second / 30

// exploreCommand opens an interactive terminal treemap.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		noCache  bool
		duration time.Duration
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [source]",
		Short: "Browse a treemap interactively in the terminal",
		Long: `Browse a treemap interactively in the terminal.

Click a group to drill into it; right-click, backspace or esc drills out;
r returns to the root; q quits. Resizing the terminal rebuilds the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRenderConfig(cmd, &opts, c.config.Render)
			opts.Source = args[0]
			return c.runExplore(cmd.Context(), opts, duration, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "group to start zoomed into")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title shown in the header at the root")
	cmd.Flags().StringVar(&opts.Tiling, "tiling", "", "tiling: squarify (default), slicedice, slice, dice")
	cmd.Flags().DurationVar(&duration, "duration", 0, "transition duration (default 750ms, negative disables)")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, duration time.Duration, noCache bool) error {
	if err := pipeline.ValidateTiling(opts.Tiling); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Loaded " + ds.Location)

	cfg := opts.ViewConfig()
	cfg.Duration = duration
	v := view.New(cfg, view.WithLogger(c.Logger))
	if err := v.Load(ds.Raw); err != nil {
		return err
	}

	m := newExploreModel(v, opts.Focus)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// =============================================================================
// exploreModel - bubbletea host for a view session
// =============================================================================

type tickMsg time.Time

// exploreModel renders the session one terminal cell per canvas unit. Row 0
// is the header and the last row the key help, so the canvas is two rows
// shorter than the terminal.
type exploreModel struct {
	view   *view.Session
	focus  string
	width  int
	height int
	err    error

	// ticking is set while a tea.Tick is pending; one loop drives all
	// transitions.
	ticking bool
}

func newExploreModel(v *view.Session, focus string) *exploreModel {
	return &exploreModel{view: v, focus: focus}
}

func (m *exploreModel) Init() tea.Cmd { return nil }

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if err := m.view.Resize(float64(m.width), float64(max(1, m.height-2))); err != nil {
			m.err = err
			return m, nil
		}
		// Resizing rebuilds from scratch; restore the starting focus once.
		if m.focus != "" {
			m.err = m.view.FocusPath(m.focus)
			m.view.Settle()
			m.focus = ""
		}
		return m, nil

	case tickMsg:
		m.ticking = false
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left", "h", "u":
			return m, m.after(m.view.Back())
		case "r", "home":
			return m, m.after(m.view.Reset())
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			// Sample the middle of the terminal cell; row 0 is the header.
			return m, m.after(m.view.ClickAt(float64(msg.X)+0.5, float64(msg.Y-1)+0.5))
		case tea.MouseButtonRight:
			return m, m.after(m.view.Back())
		}
	}
	return m, nil
}

// after starts the animation loop when a transition was committed and no
// loop is running yet.
func (m *exploreModel) after(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	m.err = nil
	if m.ticking {
		return nil
	}
	return m.tick()
}

func (m *exploreModel) tick() tea.Cmd {
	if !m.view.Animating() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

var (
	exploreHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(lipgloss.Color("#333333"))
	exploreLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	exploreHelp        = StyleDim.Render("click drill in · right-click/esc back · r reset · q quit")
)

func (m *exploreModel) View() string {
	if m.width == 0 {
		return "loading..."
	}
	frame := m.view.Frame()
	rows := max(1, m.height-2)

	header := frame.Header
	if m.err != nil {
		header += "  " + StyleWarning.Render(m.err.Error())
	}

	var b strings.Builder
	b.WriteString(exploreHeaderStyle.Width(m.width).Render(truncate(header, m.width)))
	b.WriteString("\n")
	b.WriteString(rasterize(frame.Sprites, m.view.Palette(), m.width, rows))
	b.WriteString("\n")
	b.WriteString(exploreHelp)
	return b.String()
}

// rasterize paints sprites onto a cols×rows grid of background colors, later
// sprites on top, and writes each cell's name into its top-left corner.
// Sprites fading below half opacity are skipped.
func rasterize(sprites []reconcile.Sprite, palette *styles.Ordinal, cols, rows int) string {
	fill := make([][]string, rows)
	text := make([][]rune, rows)
	for y := range fill {
		fill[y] = make([]string, cols)
		text[y] = []rune(strings.Repeat(" ", cols))
	}

	for _, s := range sprites {
		if s.Opacity < 0.5 {
			continue
		}
		x0, x1 := clampCell(s.Rect.Left, cols), clampCell(s.Rect.Right, cols)
		y0, y1 := clampCell(s.Rect.Top, rows), clampCell(s.Rect.Bottom, rows)
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		color := palette.Color(styles.ColorKey(s.Node))
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				fill[y][x] = color
				text[y][x] = ' '
			}
		}
		// One column of padding on the left, like the SVG label inset.
		label := []rune(truncate(s.Node.Name, x1-x0-1))
		copy(text[y0][x0+1:x1], label)
	}

	lines := make([]string, rows)
	for y := range fill {
		var line strings.Builder
		for x := 0; x < cols; {
			end := x + 1
			for end < cols && fill[y][end] == fill[y][x] {
				end++
			}
			run := string(text[y][x:end])
			if fill[y][x] == "" {
				line.WriteString(run)
			} else {
				line.WriteString(exploreLabelStyle.Background(lipgloss.Color(fill[y][x])).Render(run))
			}
			x = end
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func clampCell(v float64, n int) int {
	return int(math.Max(0, math.Min(float64(n), math.Round(v))))
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
