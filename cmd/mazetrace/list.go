package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/platform/tui"
	"github.com/vovakirdan/mazetrace/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all maze layouts",
	Long:  `Shows every registered maze layout, density preset and fade curve.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	layouts := registry.List()

	if len(layouts) == 0 {
		fmt.Println("No layouts available.")
		return
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range layouts {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, l := range layouts {
		fmt.Printf("  %-*s  %s\n", maxIDLen, l.ID, l.Title)
	}

	presets := make([]string, len(config.Presets))
	for i, p := range config.Presets {
		presets[i] = string(p)
	}

	fmt.Println()
	fmt.Printf("Density presets: %s\n", strings.Join(presets, ", "))
	fmt.Printf("Fade curves:     %s\n", strings.Join(tui.FadeCurves(), ", "))
	fmt.Println()
	fmt.Println("Run 'mazetrace play <id>' to watch a layout.")
}
