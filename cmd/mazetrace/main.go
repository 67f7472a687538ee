// mazetrace animates a breadth-first search through a maze in the terminal.
//
// Usage:
//
//	mazetrace list              - List available maze layouts
//	mazetrace play [layout]     - Watch the search on one layout
//	mazetrace menu              - Pick layouts interactively
//	mazetrace runs [layout]     - Show recorded runs
//	mazetrace serve             - Start SSH server for remote viewing
//	mazetrace config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: from config, 60)
//	--seed <value>  - Set RNG seed for reproducible mazes
//	--db <path>     - Set database path (default: ~/.mazetrace/runs.db)
//	--config <path> - Use a custom config YAML
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/storage"

	// Import layouts to register them
	_ "github.com/vovakirdan/mazetrace/internal/layouts"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagPreset  string
	flagDebug   bool
	flagLogFile string
	flagEnvFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazetrace",
	Short: "mazetrace - watch a breadth-first search solve a maze",
	Long: `mazetrace builds a maze and animates a breadth-first search from the
home tile (red) to the goal tile (green), one step per frame. Searched
tiles flash white and fade, and once the goal is reached the shortest
path is traced back in yellow.

Available commands:
  list     - Show all maze layouts
  play     - Watch one layout directly
  menu     - Interactive layout picker
  runs     - View recorded runs
  serve    - Start SSH server for remote viewing
  config   - Print the effective configuration

Examples:
  mazetrace play
  mazetrace play carved --seed 42
  mazetrace play --layout-file ./rooms.yaml
  mazetrace runs scatter
  mazetrace serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadEnv(flagEnvFile)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (default $"+storage.EnvDB+" or "+storage.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default $"+config.EnvConfig+" or search path)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "density-preset", "", "Wall density preset: sparse, normal, dense")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before running")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEnv loads KEY=value pairs from path. A missing file is not an error
// and variables already set in the environment win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// dbPath resolves the runs database: --db, then $MAZETRACE_DB, then the default.
func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	if env := os.Getenv(storage.EnvDB); env != "" {
		return env
	}
	return storage.DefaultPath
}

// loadConfig loads the config file and applies the global flags on top.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	if err := config.ApplyDensityPreset(&cfg, config.DensityPreset(flagPreset)); err != nil {
		return config.Config{}, "", err
	}
	if flagFPS > 0 {
		cfg.Run.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, source, nil
}

// runtimeConfig sizes the view to the terminal, falling back to 80x24.
func runtimeConfig(tickRate int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	if tickRate > 0 {
		rc.TickRate = tickRate
	}
	rc.Seed = flagSeed
	return rc
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
