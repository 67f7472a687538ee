package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/platform/tui"
	"github.com/vovakirdan/mazetrace/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick maze layouts from a menu",
	Long: `Start mazetrace in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a layout.
Press B or Esc in the visualizer to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Watch layout
  Tab          - Recorded runs
  Q            - Quit

Examples:
  mazetrace menu
  mazetrace menu --fps 30
  mazetrace menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base, _, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Open run storage
	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	rc := runtimeConfig(base.Run.TickRate)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rc, base.Maze.LayoutFile != "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRuns {
			goBack, rbErr := tui.RunRunsBoard(store, rc.ScreenW, rc.ScreenH)
			if rbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from runs board
		}

		cfg := base
		cfg.Maze.Layout = menuResult.LayoutID

		// Fresh maze for every pick unless a seed was given
		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(cfg, store, rc, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running visualizer: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
