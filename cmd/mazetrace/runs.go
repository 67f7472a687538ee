package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/platform/tui"
	"github.com/vovakirdan/mazetrace/internal/registry"
	"github.com/vovakirdan/mazetrace/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
	flagRunsClear bool
	flagRunsID    string
)

var runsCmd = &cobra.Command{
	Use:   "runs [layout]",
	Short: "Show recorded runs",
	Long: `Display the most recent finished searches, newest first, with
statistics for the layout (or per layout when none is given). --id shows a
single run, looked up by its ID or a unique prefix of it.

Examples:
  mazetrace runs
  mazetrace runs carved --limit 50
  mazetrace runs --tui
  mazetrace runs scatter --clear
  mazetrace runs --id 3f2a9c`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Open the interactive runs board")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs instead of showing them")
	runsCmd.Flags().StringVar(&flagRunsID, "id", "", "Show one run by ID or ID prefix")
}

func runRuns(_ *cobra.Command, args []string) {
	layout := ""
	if len(args) == 1 {
		layout = args[0]
		if !registry.Exists(layout) {
			fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", layout)
			fmt.Fprintln(os.Stderr, "Run 'mazetrace list' to see available layouts.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(dbPath())
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	if flagRunsID != "" {
		r, err := store.RunByID(flagRunsID)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		if r == nil {
			store.Close()
			fail("no run with id %q", flagRunsID)
		}
		fmt.Print(tui.RunDetail(r))
		return
	}

	if flagRunsClear {
		n, err := store.ClearRuns(layout)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Deleted %d runs.\n", n)
		return
	}

	if flagRunsTUI {
		rc := runtimeConfig(0)
		if _, err := tui.RunRunsBoard(store, rc.ScreenW, rc.ScreenH); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	var runs []storage.Run
	if layout == "" {
		runs, err = store.RecentRuns(flagRunsLimit)
	} else {
		runs, err = store.RunsByLayout(layout, flagRunsLimit)
	}
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	title := "all layouts"
	if layout != "" {
		title = layout
	}
	fmt.Printf("Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'mazetrace play' and let a search finish to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-14s  %-8s  %-20s  %-8s  %-8s  %9s  %5s\n", "ID", "When", "Layout", "Seed", "Size", "Outcome", "Expanded", "Path")
	fmt.Printf("  %-8s  %-14s  %-8s  %-20s  %-8s  %-8s  %9s  %5s\n", "--", "----", "------", "----", "----", "-------", "--------", "----")

	for _, r := range runs {
		path := "-"
		if r.Outcome == storage.OutcomeFound {
			path = fmt.Sprintf("%d", r.PathLen)
		}
		fmt.Printf("  %-8.8s  %-14s  %-8s  %-20d  %-8s  %-8s  %9s  %5s\n",
			r.ID, humanize.Time(r.CreatedAt), r.Layout, r.Seed,
			fmt.Sprintf("%dx%d", r.Width, r.Height), r.Outcome,
			humanize.Comma(int64(r.Expanded)), path)
	}

	if st, err := store.Stats(layout); err == nil {
		fmt.Println()
		fmt.Println(tui.StatsLine(st))
	}
	if layout != "" {
		return
	}
	if all, err := store.AllStats(); err == nil && len(all) > 1 {
		fmt.Println()
		for _, line := range tui.LayoutStatsLines(all) {
			fmt.Println("  " + line)
		}
	}
}
