// Package visualizer drives one maze run: it builds the maze, steps the
// search once per frame and turns every step into a canvas paint.
package visualizer

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazetrace/internal/canvas"
	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/registry"
	"github.com/vovakirdan/mazetrace/internal/search"
)

// Outcome is how a finished run ended.
type Outcome string

const (
	OutcomeNone   Outcome = ""
	OutcomeFound  Outcome = "found"
	OutcomeNoPath Outcome = "no_path"
)

// Session owns the maze, the search and the canvas of a single run.
// It is driven from one goroutine and is not safe for concurrent use.
type Session struct {
	cfg     config.Config
	palette config.Palette
	seed    int64
	logger  *log.Logger

	grid   *maze.Grid
	bfs    *search.BFS
	canvas *canvas.Canvas

	steps     int // steps per tick
	ticks     int
	idleTicks int // ticks since the run finished
	outcome   Outcome
	pathLen   int
}

// New builds a w x h maze with the configured layout and seed, paints its
// walls and markers and prepares a search from home. File layouts bring
// their own size and markers. A nil logger discards output.
func New(cfg config.Config, w, h int, seed int64, logger *log.Logger) (*Session, error) {
	palette, err := cfg.Palette.Resolve()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	req := registry.Request{
		Params: maze.Params{
			Width:    w,
			Height:   h,
			Home:     maze.P(cfg.Maze.Home[0], cfg.Maze.Home[1]),
			Goal:     maze.P(cfg.Maze.Goal[0], cfg.Maze.Goal[1]),
			Density:  cfg.Maze.Density,
			Braiding: cfg.Maze.Braiding,
		},
		File: cfg.Maze.LayoutFile,
	}
	grid, err := registry.Create(cfg.Maze.Layout, req, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("visualizer: build %s maze: %w", cfg.Maze.Layout, err)
	}

	cv, err := canvas.New(grid.Width(), grid.Height(),
		canvas.WithColors(palette.EmptyHigh, palette.EmptyLow),
		canvas.WithFadeRate(cfg.Canvas.FadeRate),
	)
	if err != nil {
		return nil, fmt.Errorf("visualizer: %w", err)
	}

	s := &Session{
		cfg:     cfg,
		palette: palette,
		seed:    seed,
		logger:  logger,
		grid:    grid,
		bfs:     search.New(grid.Home()),
		canvas:  cv,
		steps:   max(cfg.Run.StepsPerTick, 1),
	}
	if err := s.paintMaze(); err != nil {
		return nil, err
	}

	logger.Debug("session started",
		"layout", cfg.Maze.Layout,
		"seed", seed,
		"size", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
		"walls", grid.Count(maze.RoomWall),
	)
	return s, nil
}

// paintMaze paints home, goal and walls with a slightly darker low color.
func (s *Session) paintMaze() error {
	var err error
	s.grid.Each(func(p maze.Point, r maze.Room) {
		if err != nil {
			return
		}
		var high core.Color
		switch r {
		case maze.RoomHome:
			high = s.palette.Home
		case maze.RoomGoal:
			high = s.palette.Goal
		case maze.RoomWall:
			high = s.palette.Wall
		default:
			return
		}
		low, serr := high.Scale(s.palette.LowFactor)
		if serr != nil {
			err = fmt.Errorf("visualizer: %s low color: %w", r, serr)
			return
		}
		err = s.canvas.Paint(p.X, p.Y, high, low)
	})
	return err
}

// Tick runs the configured number of steps and then fades the canvas by dt
// seconds. Once the run is finished only the fade continues.
func (s *Session) Tick(dt float32) error {
	s.ticks++
	if s.Finished() {
		s.idleTicks++
	}
	for i := 0; i < s.steps && !s.Finished(); i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	s.canvas.Advance(dt)
	return nil
}

// Step advances the search or the backtrace by one step and paints the
// result. It does not fade the canvas.
func (s *Session) Step() error {
	switch s.bfs.Phase() {
	case search.PhaseSearching:
		ev, err := s.bfs.AdvanceSearch(s.grid)
		if errors.Is(err, search.ErrNoPath) {
			s.finish(OutcomeNoPath)
			s.logger.Warn("no path to goal",
				"seed", s.seed,
				"expanded", s.bfs.Expanded(),
				"ticks", s.ticks,
			)
			return nil
		}
		if err != nil {
			return fmt.Errorf("visualizer: %w", err)
		}
		if err := s.paintStep(ev.Cell, s.palette.Searched); err != nil {
			return err
		}
		if ev.Kind == search.EventGoalReached {
			s.pathLen = len(s.bfs.Path()) - 1
			s.logger.Info("goal reached",
				"seed", s.seed,
				"goal", ev.Goal,
				"expanded", s.bfs.Expanded(),
				"path", s.pathLen,
			)
		}
		return nil

	case search.PhaseFound, search.PhaseBacktracking:
		c, ok := s.bfs.AdvanceBacktrace()
		if !ok {
			s.finish(OutcomeFound)
			return nil
		}
		return s.paintStep(c, s.palette.Path)
	}
	return nil
}

// paintStep paints a search or path cell. Home and goal keep their colors.
func (s *Session) paintStep(p maze.Point, high core.Color) error {
	if p == s.grid.Home() || p == s.grid.Goal() {
		return nil
	}
	if err := s.canvas.Paint(p.X, p.Y, high, s.palette.EmptyLow); err != nil {
		return fmt.Errorf("visualizer: %w", err)
	}
	return nil
}

func (s *Session) finish(o Outcome) {
	if s.outcome != OutcomeNone {
		return
	}
	s.outcome = o
	s.idleTicks = 0
	s.logger.Debug("run finished", "seed", s.seed, "outcome", string(o), "ticks", s.ticks)
}

// Finished reports whether the run has ended, with or without a path.
func (s *Session) Finished() bool { return s.outcome != OutcomeNone }

// Outcome returns how the run ended, or OutcomeNone while running.
func (s *Session) Outcome() Outcome { return s.outcome }

// ShouldRestart reports whether auto-restart is on and the finished run
// has been on screen for the configured delay.
func (s *Session) ShouldRestart() bool {
	return s.cfg.Run.AutoRestart && s.Finished() && s.idleTicks >= s.cfg.Run.RestartDelayTicks
}

// StepsPerTick returns how many steps each Tick runs.
func (s *Session) StepsPerTick() int { return s.steps }

// SetStepsPerTick changes the speed, clamped to [1, 64].
func (s *Session) SetStepsPerTick(n int) {
	s.steps = core.Clamp(n, 1, 64)
}

// Seed returns the seed the maze was built from.
func (s *Session) Seed() int64 { return s.seed }

// Grid returns the maze.
func (s *Session) Grid() *maze.Grid { return s.grid }

// Search returns the search.
func (s *Session) Search() *search.BFS { return s.bfs }

// Canvas returns the canvas.
func (s *Session) Canvas() *canvas.Canvas { return s.canvas }

// Snapshot is a read-only summary of a session for HUDs and run records.
type Snapshot struct {
	Layout   string
	Seed     int64
	Width    int
	Height   int
	Density  float64
	Tick     int
	Steps    int
	Phase    search.Phase
	Outcome  Outcome
	Expanded int
	Frontier int
	Visited  int
	PathLen  int
}

// Snapshot captures the current counters.
func (s *Session) Snapshot() Snapshot {
	bs := s.bfs.Snapshot()
	return Snapshot{
		Layout:   s.cfg.Maze.Layout,
		Seed:     s.seed,
		Width:    s.grid.Width(),
		Height:   s.grid.Height(),
		Density:  s.cfg.Maze.Density,
		Tick:     s.ticks,
		Steps:    s.steps,
		Phase:    bs.Phase,
		Outcome:  s.outcome,
		Expanded: bs.Expanded,
		Frontier: bs.Frontier,
		Visited:  bs.Visited,
		PathLen:  s.pathLen,
	}
}
