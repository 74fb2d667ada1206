package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloKostenko/airplane/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a flight ends, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  airplane menu
  airplane menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve live snapshots over WebSocket on this address")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	svc, release := openServices(logger)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagSpectate != "" {
		svc.Hub = startSpectating(ctx, flagSpectate, logger)
	}

	if err := tui.Run(svc, runtimeConfig(), tui.ScreenMenu, ""); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
