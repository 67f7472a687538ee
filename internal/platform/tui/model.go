package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/layouts"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/storage"
	"github.com/vovakirdan/mazetrace/internal/visualizer"
)

// hudRows is the number of screen rows reserved below the maze.
// config.MazeConfig.Size leaves the same two rows free.
const hudRows = 2

// Model is the Bubble Tea model that animates one maze search after another.
type Model struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	session *visualizer.Session
	fader   *Fader
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	keys    *KeyMapper

	inputFrame core.InputFrame
	fitW, fitH int // maze size the current session was built for
	paused     bool
	runSaved   bool // whether the finished run has been recorded
	quitting   bool
	embedded   bool // Back returns to a parent model instead of quitting
	backToMenu bool
	status     string
	err        error
}

// NewModel creates the visualizer model and builds the first maze.
// A nil store disables run history; a nil logger discards output.
func NewModel(cfg config.Config, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) (Model, error) {
	// Use time-based seed if not specified
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = cfg.Run.TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fader, err := NewFader(cfg.Canvas.FadeCurve)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		cfg:        cfg,
		runtime:    rc,
		fader:      fader,
		screen:     core.NewScreen(rc.ScreenW, rc.ScreenH),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if err := m.rebuild(rc.Seed); err != nil {
		return Model{}, err
	}
	return m, nil
}

// rebuild starts a fresh run with the given seed sized to the current screen.
func (m *Model) rebuild(seed int64) error {
	w, h := m.cfg.Maze.Size(m.runtime.ScreenW, m.runtime.ScreenH)
	steps := m.cfg.Run.StepsPerTick
	if m.session != nil {
		steps = m.session.StepsPerTick()
	}

	s, err := visualizer.New(m.cfg, w, h, seed, m.logger)
	if err != nil {
		return err
	}
	s.SetStepsPerTick(steps)

	m.session = s
	m.runtime.Seed = seed
	m.fitW, m.fitH = w, h
	m.runSaved = false
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if m.embedded {
			// Remote viewers must not write into the server's home
			m.status = "saving layouts is not available over SSH"
			return m, nil
		}
		m.saveLayout()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Only a change of the fitted maze size throws the current run away
	w, h := m.cfg.Maze.Size(msg.Width, msg.Height)
	if m.cfg.Maze.Layout == layouts.File || (w == m.fitW && h == m.fitH) {
		return m, nil
	}
	if err := m.rebuild(m.runtime.Seed); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the run by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	in := m.inputFrame
	restart, pause, step := in.Has(core.ActionRestart), in.Has(core.ActionPause), in.Has(core.ActionStep)
	faster, slower := in.Has(core.ActionFaster), in.Has(core.ActionSlower)
	m.inputFrame.Clear()

	if restart {
		if err := m.rebuild(m.runtime.Seed + 1); err != nil {
			return m.fail(err)
		}
		m.status = ""
		return m, tickCmd(m.runtime.TickRate)
	}

	switch {
	case faster:
		m.session.SetStepsPerTick(m.session.StepsPerTick() * 2)
	case slower:
		m.session.SetStepsPerTick(m.session.StepsPerTick() / 2)
	}
	if pause {
		m.paused = !m.paused
	}

	var err error
	switch {
	case !m.paused:
		err = m.session.Tick(1 / float32(m.runtime.TickRate))
	case step:
		err = m.session.Step()
	}
	if err != nil {
		return m.fail(err)
	}

	if m.session.Finished() && !m.runSaved {
		m.saveRun()
	}
	if !m.paused && m.session.ShouldRestart() {
		if err := m.rebuild(m.runtime.Seed + 1); err != nil {
			return m.fail(err)
		}
	}

	return m, tickCmd(m.runtime.TickRate)
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("visualizer stopped", "err", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// saveRun records the finished run once.
func (m *Model) saveRun() {
	m.runSaved = true
	if m.store == nil {
		return
	}
	snap := m.session.Snapshot()
	id, err := m.store.SaveRun(storage.Run{
		Layout:   snap.Layout,
		Seed:     snap.Seed,
		Width:    snap.Width,
		Height:   snap.Height,
		Density:  snap.Density,
		Outcome:  string(snap.Outcome),
		Expanded: snap.Expanded,
		PathLen:  snap.PathLen,
		Ticks:    snap.Tick,
	})
	if err != nil {
		// The animation carries on without history
		m.logger.Warn("cannot save run", "err", err)
		return
	}
	m.logger.Debug("run saved", "id", id, "outcome", snap.Outcome)
}

// saveLayout writes the current maze as a layout file that the file layout can load.
func (m *Model) saveLayout() {
	dir, err := layoutDir()
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}

	snap := m.session.Snapshot()
	name := fmt.Sprintf("%s_%d", snap.Layout, snap.Seed)
	data, err := maze.MarshalLayout(name, m.session.Grid())
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", name, timestamp))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + path
	m.logger.Info("layout saved", "path", path)
}

// layoutDir returns ~/.mazetrace/layouts, creating it if needed.
func layoutDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".mazetrace", "layouts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create layout directory: %w", err)
	}
	return dir, nil
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked to leave the visualizer.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Session returns the run being shown.
func (m Model) Session() *visualizer.Session { return m.session }

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	cv := m.session.Canvas()
	originX := max((m.screen.Width()-cv.TilesW()*TileCols)/2, 0)
	area := DrawCanvas(m.screen, cv, m.fader, originX, 0)
	m.drawHUD(min(area.Bottom(), m.screen.Height()-hudRows))

	return RenderScreen(m.screen)
}

func (m Model) drawHUD(y int) {
	snap := m.session.Snapshot()
	palette, _ := m.cfg.Palette.Resolve()

	state := snap.Phase.String()
	color := palette.Searched
	switch snap.Outcome {
	case visualizer.OutcomeFound:
		state, color = "found", palette.Path
	case visualizer.OutcomeNoPath:
		state, color = "no path", palette.Home
	}
	if m.paused {
		state += " (paused)"
		color = core.Grey
	}

	line := fmt.Sprintf(" %s %dx%d  %-18s tick %-6d expanded %-6d frontier %-5d path %-4d seed %d  x%d",
		snap.Layout, snap.Width, snap.Height, state, snap.Tick,
		snap.Expanded, snap.Frontier, snap.PathLen, snap.Seed, snap.Steps)
	m.screen.DrawTextStyled(0, y, line, color)

	switch {
	case m.status != "":
		m.screen.DrawText(0, y+1, " "+m.status)
	case m.paused:
		m.screen.DrawTextCentered(y+1, "paused: n steps once, p resumes")
	default:
		m.screen.DrawText(0, y+1, " p pause  n step  r new maze  +/- speed  ctrl+s save layout  b back  q quit")
	}
}

// Run starts the Bubble Tea program for the visualizer.
func Run(cfg config.Config, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) error {
	model, err := NewModel(cfg, store, rc, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
