package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/PabloKostenko/airplane/internal/audio"
	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/settings"
	"github.com/PabloKostenko/airplane/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.airplane/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.airplane/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one airplane session per SSH connection.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	settings *settings.Manager
	logger   *log.Logger
}

// NewSSHServer builds the wish server. Settings are shared by all
// sessions; nil keeps defaults in memory. A missing scores database is
// logged and sessions run without history.
func NewSSHServer(cfg SSHServerConfig, prefs *settings.Manager) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "airplane-ssh",
	})
	if prefs == nil {
		prefs = settings.New(nil, logger)
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		settings: prefs,
		logger:   logger,
	}

	// Middleware runs last to first: sessions are timed around the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newProgram),
			srv.timeSession,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("wish server on %s: %w", cfg.Address, err)
	}
	srv.server = server
	return srv, nil
}

// hostKeyPath returns where the host key lives, creating its directory.
// Wish generates the key there on first start.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("host key: %w", err)
		}
		path = filepath.Join(home, ".airplane", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("host key directory: %w", err)
	}
	return path, nil
}

// newProgram builds the model for one SSH session, sized to its PTY.
func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "airplane needs a terminal: connect with ssh -t")
		return nil, nil
	}

	// Anything tied to the session is released when it disconnects.
	ended := sess.Context().Done()
	bell := audio.NewBell(sess.Stderr(), s.settings, s.logger)
	go func() {
		<-ended
		bell.Close()
	}()

	model := NewSessionModel(Services{
		Store:    s.store,
		Settings: s.settings,
		Bell:     bell,
		Logger:   s.logger.WithPrefix(sess.User()),
		Ended:    ended,
	}, core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Seed:    time.Now().UnixNano(),
	}, sess.User(), ScreenMenu, "")

	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// timeSession logs each connection and how long it lasted.
func (s *SSHServer) timeSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		began := time.Now()
		s.logger.Info("connected", "user", sess.User(), "remote", sess.RemoteAddr())
		next(sess)
		s.logger.Info("disconnected",
			"user", sess.User(),
			"remote", sess.RemoteAddr(),
			"duration", time.Since(began).Round(time.Second),
		)
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.closeStore()
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("signal received, stopping")
		return s.Shutdown()
	}
}

// Shutdown waits up to ten seconds for sessions to leave, then closes the
// scores database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
