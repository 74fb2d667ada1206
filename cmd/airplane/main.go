// airplane is a terminal side-scroller: steer a plane past clouds and
// collect fuel for bonus points.
//
// Usage:
//
//	airplane                   - Start the menu
//	airplane play              - Start a flight directly
//	airplane scores            - Show the score history
//	airplane settings          - Show or change music and sound
//	airplane config            - Print the default game config
//	airplane serve             - Start SSH server for remote play
//	airplane list              - List available games
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible flights
//	--db <path>     - Set database path (default: ~/.airplane/scores.db)
//	--log <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/PabloKostenko/airplane/internal/audio"
	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/games/airplane"
	"github.com/PabloKostenko/airplane/internal/platform/tui"
	"github.com/PabloKostenko/airplane/internal/settings"
	"github.com/PabloKostenko/airplane/internal/storage"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "airplane",
	Short: "Airplane - dodge the clouds in your terminal",
	Long: `Airplane is a terminal side-scroller. Fly right, steer up and down
to avoid clouds and pick up fuel cans for bonus points. The longer you
stay airborne the faster everything moves.

Available commands:
  play      - Start a flight directly
  menu      - Interactive menu (default)
  scores    - View the score history
  settings  - Show or change music and sound
  config    - Print the default game config
  serve     - Start SSH server for remote play
  list      - Show all available games

Examples:
  airplane
  airplane play --difficulty hard
  airplane serve --ssh :2222
  airplane settings --sound=false`,
	RunE: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.airplane/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file (discarded otherwise)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig sizes the playfield to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}
}

// newLogger returns a logger for interactive commands. The terminal belongs
// to the game, so logs go to --log or nowhere.
func newLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "airplane",
	})
	return logger, func() { _ = f.Close() }, nil
}

// openServices wires storage, settings and the bell for a local session.
// Storage and settings failures are logged and the game runs without them.
// The returned func releases everything.
func openServices(logger *log.Logger) (tui.Services, func()) {
	svc := tui.Services{Logger: logger}
	airplane.SetLogger(logger.WithPrefix("airplane"))

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		svc.Store = store
	}

	prefs, err := settings.Open(logger)
	if err != nil {
		logger.Warn("settings not persisted", "error", err)
		prefs = settings.New(nil, logger)
	}
	svc.Settings = prefs

	// Bubble Tea owns stdout; the bell rings through stderr.
	svc.Bell = audio.NewBell(os.Stderr, prefs, logger)

	return svc, func() {
		svc.Bell.Close()
		if svc.Store != nil {
			svc.Store.Close()
		}
	}
}
