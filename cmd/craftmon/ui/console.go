package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"craftmon/internal/peripheral/sim"
	"craftmon/internal/screen"
)

// redrawInterval paces console repaints. The monitors publish a generation
// counter, so a repaint with no changes is cheap but still worth skipping.
const redrawInterval = 100 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type keymap struct {
	NextPanel key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Touch     key.Binding
	Quit      key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		NextPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next monitor")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "cursor left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "cursor right")),
		Touch:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "touch")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Console is the bubbletea model. It is read-only over the monitors; the
// only way it influences the system is by posting touch events to the bus.
type Console struct {
	bus      *sim.Bus
	monitors []*sim.Monitor
	mounted  func() map[string]string
	logsDir  string

	keys  keymap
	focus int
	// Per-monitor cursor positions in cell coordinates.
	curX, curY []int

	lastGen []uint64
	cache   []string
	tail    []string
}

// NewConsole creates a console over the simulated monitors. mounted reports
// monitor -> view id for the panel titles. logsDir, when non-empty, is
// tailed into a log strip under the panels.
func NewConsole(bus *sim.Bus, monitors []*sim.Monitor, mounted func() map[string]string, logsDir string) *Console {
	return &Console{
		bus:      bus,
		monitors: monitors,
		mounted:  mounted,
		logsDir:  logsDir,
		keys:     defaultKeymap(),
		curX:     make([]int, len(monitors)),
		curY:     make([]int, len(monitors)),
		lastGen:  make([]uint64, len(monitors)),
		cache:    make([]string, len(monitors)),
	}
}

// Init implements tea.Model.
func (c *Console) Init() tea.Cmd { return tick() }

// Update implements tea.Model.
func (c *Console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		c.refreshTail()
		return c, tick()

	case tea.KeyMsg:
		if len(c.monitors) == 0 {
			if key.Matches(msg, c.keys.Quit) {
				return c, tea.Quit
			}
			return c, nil
		}
		mon := c.monitors[c.focus]
		w, h := mon.Size()
		switch {
		case key.Matches(msg, c.keys.Quit):
			return c, tea.Quit
		case key.Matches(msg, c.keys.NextPanel):
			c.focus = (c.focus + 1) % len(c.monitors)
		case key.Matches(msg, c.keys.Up):
			c.curY[c.focus] = clamp(c.curY[c.focus]-1, h)
		case key.Matches(msg, c.keys.Down):
			c.curY[c.focus] = clamp(c.curY[c.focus]+1, h)
		case key.Matches(msg, c.keys.Left):
			c.curX[c.focus] = clamp(c.curX[c.focus]-1, w)
		case key.Matches(msg, c.keys.Right):
			c.curX[c.focus] = clamp(c.curX[c.focus]+1, w)
		case key.Matches(msg, c.keys.Touch):
			c.bus.Touch(mon.Name(), c.curX[c.focus], c.curY[c.focus])
		}
	}
	return c, nil
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}

// View implements tea.Model.
func (c *Console) View() string {
	if len(c.monitors) == 0 {
		return helpStyle.Render("no monitors configured")
	}
	views := c.mounted()

	panels := make([]string, len(c.monitors))
	for i, mon := range c.monitors {
		panels[i] = c.renderPanel(i, mon, views[mon.Name()])
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	parts := []string{out}
	if len(c.tail) > 0 {
		parts = append(parts, subtitleStyle.Render(strings.Join(c.tail, "\n")))
	}
	parts = append(parts, helpStyle.Render("tab: next monitor • arrows: cursor • enter: touch • q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// tailLines caps the log strip under the monitor panels.
const tailLines = 4

// refreshTail re-reads the end of the most recently written category log.
// Category logging is usually off; the strip simply stays empty then.
func (c *Console) refreshTail() {
	if c.logsDir == "" {
		return
	}
	entries, err := os.ReadDir(c.logsDir)
	if err != nil {
		return
	}
	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(newestMod) {
			newest = filepath.Join(c.logsDir, e.Name())
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return
	}
	data, err := os.ReadFile(newest)
	if err != nil {
		return
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > tailLines {
		lines = lines[len(lines)-tailLines:]
	}
	c.tail = lines
}

// renderPanel draws one monitor as a bordered panel: title, the cell grid,
// and the touch cursor when focused.
func (c *Console) renderPanel(i int, mon *sim.Monitor, viewID string) string {
	cells, gen := mon.Snapshot()
	focused := i == c.focus

	// Unfocused panels redraw only when the monitor changed; the focused
	// panel always redraws so the cursor tracks key presses.
	if !focused && gen == c.lastGen[i] && c.cache[i] != "" {
		return c.cache[i]
	}
	c.lastGen[i] = gen

	title := titleStyle.Render(mon.Name())
	if viewID != "" {
		title += subtitleStyle.Render(fmt.Sprintf(" · %s", viewID))
	}

	var rows []string
	rows = append(rows, title)
	for y, row := range cells {
		rows = append(rows, c.renderRow(row, focused, c.curX[i], y == c.curY[i]))
	}

	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	panel := style.Render(strings.Join(rows, "\n"))
	if !focused {
		c.cache[i] = panel
	}
	return panel
}

// renderRow styles one monitor row, coalescing runs of identical colors so
// wide monitors do not explode into per-cell escape sequences.
func (c *Console) renderRow(row []screen.Cell, focused bool, cursorX int, cursorRow bool) string {
	var b strings.Builder
	runStart := 0
	flush := func(end int) {
		if end <= runStart {
			return
		}
		first := row[runStart]
		var text strings.Builder
		for _, cell := range row[runStart:end] {
			text.WriteRune(cell.Ch)
		}
		st := lipgloss.NewStyle().
			Foreground(TermColor(first.FG)).
			Background(TermColor(first.BG))
		b.WriteString(st.Render(text.String()))
		runStart = end
	}

	for x, cell := range row {
		if focused && cursorRow && x == cursorX {
			flush(x)
			b.WriteString(cursorStyle.
				Foreground(TermColor(cell.FG)).
				Background(TermColor(cell.BG)).
				Render(string(cell.Ch)))
			runStart = x + 1
			continue
		}
		if x > runStart && (cell.FG != row[runStart].FG || cell.BG != row[runStart].BG) {
			flush(x)
		}
	}
	flush(len(row))
	return b.String()
}
