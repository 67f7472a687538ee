package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/mazetrace/internal/registry"
	"github.com/vovakirdan/mazetrace/internal/storage"
)

// Runs board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the layout sidebar
	sidebarWidth       = 20  // Width of layout sidebar
	maxRuns            = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Back       key.Binding
	Quit       key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLayout, k.PrevLayout, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLayout, k.PrevLayout},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev layout"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next layout"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev layout"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoardModel is the Bubble Tea model for the run history screen.
// The first sidebar entry shows runs of every layout.
type RunsBoardModel struct {
	layouts     []registry.LayoutInfo
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.Stats
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewRunsBoardModel creates a new runs board model.
func NewRunsBoardModel(store *storage.Store, width, height int) RunsBoardModel {
	entries := append([]registry.LayoutInfo{{ID: "", Title: "All layouts"}}, registry.List()...)

	h := help.New()
	h.ShowAll = false

	m := RunsBoardModel{
		layouts:     entries,
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Layout", Width: 8},
		{Title: "Seed", Width: 10},
		{Title: "Size", Width: 8},
		{Title: "Outcome", Width: 8},
		{Title: "Expanded", Width: 9},
		{Title: "Path", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, stats, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RunsBoardModel) current() string {
	if len(m.layouts) == 0 {
		return ""
	}
	return m.layouts[m.cursor].ID
}

// loadRuns loads runs and stats for the selected layout.
func (m *RunsBoardModel) loadRuns() {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		var (
			runs []storage.Run
			err  error
		)
		if layout := m.current(); layout == "" {
			runs, err = m.store.RecentRuns(maxRuns)
		} else {
			runs, err = m.store.RunsByLayout(layout, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
		if st, err := m.store.Stats(m.current()); err == nil {
			m.stats = st
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsBoardModel) updateTableRows() {
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats runs as table rows.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		path := "-"
		if r.Outcome == storage.OutcomeFound {
			path = fmt.Sprintf("%d", r.PathLen)
		}
		rows[i] = table.Row{
			humanize.Time(r.CreatedAt),
			r.Layout,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Outcome,
			humanize.Comma(int64(r.Expanded)),
			path,
		}
	}
	return rows
}

// StatsLine summarizes run statistics on one line.
func StatsLine(st *storage.Stats) string {
	if st == nil || st.Runs == 0 {
		return "no runs yet"
	}
	line := fmt.Sprintf("%s runs  %d found  %d no path  avg expanded %s",
		humanize.Comma(int64(st.Runs)), st.Found, st.NoPath, humanize.Comma(int64(st.AvgExpanded+0.5)))
	if st.BestPath > 0 {
		line += fmt.Sprintf("  shortest path %d", st.BestPath)
	}
	if !st.LastRun.IsZero() {
		line += "  last " + humanize.Time(st.LastRun)
	}
	return line
}

// LayoutStatsLines renders one StatsLine per layout, sorted by layout ID.
func LayoutStatsLines(all map[string]*storage.Stats) []string {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = fmt.Sprintf("%-8s %s", id, StatsLine(all[id]))
	}
	return lines
}

// RunDetail describes one run over several lines.
func RunDetail(r *storage.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", r.ID)
	fmt.Fprintf(&b, "  layout    %s (%dx%d, density %.3g)\n", r.Layout, r.Width, r.Height, r.Density)
	fmt.Fprintf(&b, "  seed      %d\n", r.Seed)
	fmt.Fprintf(&b, "  outcome   %s\n", r.Outcome)
	fmt.Fprintf(&b, "  expanded  %s\n", humanize.Comma(int64(r.Expanded)))
	if r.Outcome == storage.OutcomeFound {
		fmt.Fprintf(&b, "  path      %d\n", r.PathLen)
	}
	fmt.Fprintf(&b, "  ticks     %s\n", humanize.Comma(int64(r.Ticks)))
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "  recorded  %s (%s)\n", humanize.Time(r.CreatedAt), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

// Init initializes the runs board model.
func (m RunsBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLayout), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(m.layouts)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevLayout), key.Matches(msg, m.keys.Left):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.layouts) - 1
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	title := fmt.Sprintf("RUNS - %s", m.layouts[m.cursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(centerText(StatsLine(m.stats), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for layout selection.
func (m RunsBoardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Layouts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, l := range m.layouts {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := l.ID
		if name == "" {
			name = "all"
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with the current layout above the table.
func (m RunsBoardModel) renderNarrowLayout() string {
	var b strings.Builder

	name := m.current()
	if name == "" {
		name = "all"
	}
	b.WriteString(centerText(fmt.Sprintf("< %s >", name), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsBoardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nWatch a search finish to record one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBoard runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRunsBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRunsBoardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsBoardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
