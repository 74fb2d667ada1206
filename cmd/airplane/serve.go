package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/PabloKostenko/airplane/internal/games/airplane"
	"github.com/PabloKostenko/airplane/internal/platform/tui"
	"github.com/PabloKostenko/airplane/internal/settings"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and fly.

Each SSH connection gets its own session with the main menu.
Scores are stored per-server (all users share the same records).
Sound cues ring the bell of the connected terminal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.airplane/host_key

Examples:
  airplane serve                           # Listen on :23234 with auto-generated key
  airplane serve --ssh :2222               # Listen on port 2222
  airplane serve --host-key ./my_host_key  # Use specific host key
  airplane serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "airplane"})
	airplane.SetLogger(logger.WithPrefix("game"))
	prefs, err := settings.Open(logger)
	if err != nil {
		logger.Warn("settings not persisted", "error", err)
		prefs = nil
	}

	server, err := tui.NewSSHServer(cfg, prefs)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting airplane SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
