package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/PabloKostenko/airplane/internal/config"
	"github.com/PabloKostenko/airplane/internal/games/airplane"
	"github.com/PabloKostenko/airplane/internal/platform/tui"
	"github.com/PabloKostenko/airplane/internal/spectate"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a flight",
	Long: `Start flying right away, without the menu.

Controls:
  Up/W/K       - Climb
  Down/S/J     - Descend
  Mouse drag   - Steer to the pointer row
  P/Space      - Pause
  R            - Restart (after game over)
  M / N        - Toggle music / sound
  Esc          - Back (while paused or after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow speed ramp
  normal - Default ramp
  hard   - Fast speed ramp
  fixed  - No ramp, the speed never changes

Spectating:
  --spectate :8080 streams every frame as JSON to WebSocket clients
  connected to ws://host:8080/ws.

Examples:
  airplane play
  airplane play --difficulty hard
  airplane play --config ./my-airplane.yaml
  airplane play --spectate :8080 --log airplane.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve live snapshots over WebSocket on this address")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// The game falls back to defaults on a bad file; an explicit path
	// should fail loudly instead.
	if flagConfig != "" {
		if _, err := config.LoadAirplane(flagConfig); err != nil {
			return err
		}
	}
	airplane.SetConfigPath(flagConfig)
	airplane.SetDifficultyPreset(flagDifficulty)

	svc, release := openServices(logger)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagSpectate != "" {
		svc.Hub = startSpectating(ctx, flagSpectate, logger)
	}

	if err := tui.Run(svc, runtimeConfig(), tui.ScreenGame, "airplane"); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startSpectating serves a hub on addr until ctx is done. Serve owns the
// hub loop.
func startSpectating(ctx context.Context, addr string, logger *log.Logger) *spectate.Hub {
	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	go func() {
		if err := hub.Serve(ctx, addr); err != nil {
			logger.Error("spectate server stopped", "addr", addr, "error", err)
		}
	}()
	logger.Info("spectating enabled", "addr", addr)
	return hub
}
