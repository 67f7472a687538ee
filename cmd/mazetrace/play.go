package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/layouts"
	"github.com/vovakirdan/mazetrace/internal/platform/tui"
	"github.com/vovakirdan/mazetrace/internal/registry"
	"github.com/vovakirdan/mazetrace/internal/storage"
)

var (
	flagLayoutFile string
	flagWidth      int
	flagHeight     int
	flagSteps      int
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Watch the search on one layout",
	Long: `Build a maze and animate the breadth-first search from home to goal.
Without a layout argument the config's maze.layout is used.

Controls:
  P/Space    - Pause / resume
  N/.        - Single step while paused
  R          - New maze (next seed)
  +/-        - More / fewer search steps per frame
  Ctrl+S     - Save the maze as a layout file
  Q/Ctrl+C   - Quit

Density presets (scatter density / carved braiding):
  sparse - fewer walls, many loops
  normal - the classic scatter of 5000 attempts on 128x128
  dense  - crowded walls, perfect carved mazes

Examples:
  mazetrace play
  mazetrace play carved --seed 7
  mazetrace play scatter --density-preset dense
  mazetrace play --layout-file ./rooms.yaml
  mazetrace play open --width 40 --height 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLayoutFile, "layout-file", "", "Path to a layout YAML (implies the file layout)")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Maze width in tiles (0 = config value or fit terminal)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Maze height in tiles (0 = config value or fit terminal)")
	playCmd.Flags().IntVar(&flagSteps, "steps", 0, "Search steps per frame (0 = config value)")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	if flagLayoutFile != "" {
		cfg.Maze.LayoutFile = flagLayoutFile
		cfg.Maze.Layout = layouts.File
	}
	if len(args) == 1 {
		cfg.Maze.Layout = args[0]
	}
	if flagWidth > 0 {
		cfg.Maze.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Maze.Height = flagHeight
	}
	if flagSteps > 0 {
		cfg.Run.StepsPerTick = flagSteps
	}

	// Check if layout exists
	if !registry.Exists(cfg.Maze.Layout) {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", cfg.Maze.Layout)
		fmt.Fprintln(os.Stderr, "Run 'mazetrace list' to see available layouts.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()
	logger.Debug("config loaded", "source", source, "layout", cfg.Maze.Layout)

	rc := runtimeConfig(cfg.Run.TickRate)

	// Open run storage
	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the visualizer still works
		store = nil
	}

	runErr := tui.Run(cfg, store, rc, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running visualizer: %v", runErr)
	}
}
