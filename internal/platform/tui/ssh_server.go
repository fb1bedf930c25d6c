package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

// SessionObserver is notified when SSH sessions start and end.
type SessionObserver interface {
	SessionStarted()
	SessionEnded()
}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Host and Port to listen on.
	Host string
	Port int

	// HostKeyPath is the path to the host key file. It is generated on
	// first start when missing.
	HostKeyPath string

	// DBPath is the path to the progress database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent sessions; 0 means no limit.
	MaxSessions int

	TickRate int

	// Setup configures every game a session creates.
	Setup func(registry.Game)

	Observer SessionObserver
	Logger   *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Host:        "0.0.0.0",
		Port:        2222,
		HostKeyPath: ".ssh/watersort_host_ed25519",
		DBPath:      "~/.watersort/watersort.db",
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 64,
		TickRate:    30,
	}
}

// Address returns the host:port listen address.
func (c SSHServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SSHServer wraps a Wish SSH server that serves one session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "watersort-ssh",
		})
	}

	// Progress is optional; sessions still play without it
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("Could not open progress database", "path", cfg.DBPath, "err", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	if dir := filepath.Dir(cfg.HostKeyPath); dir != "" {
		if mkdirErr := os.MkdirAll(dir, 0o700); mkdirErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
		}
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session. The SSH user
// name is the player whose progress is loaded and saved.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		wish.Fatalln(sshSession, "no active terminal, use ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(cfg, Options{
		Store:  s.store,
		Player: sshSession.User(),
		Logger: s.logger.With("user", sshSession.User()),
		Setup:  s.config.Setup,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// limitMiddleware rejects sessions above MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if s.config.MaxSessions > 0 && n > int64(s.config.MaxSessions) {
			s.logger.Warn("Session rejected", "user", sshSession.User(), "active", n-1)
			wish.Fatalln(sshSession, "server is full, try again later")
			return
		}

		if s.config.Observer != nil {
			s.config.Observer.SessionStarted()
			defer s.config.Observer.SessionEnded()
		}
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("Session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("Session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled or
// the process receives SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("Starting SSH server", "address", s.config.Address())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.closeStore()
			return fmt.Errorf("ssh server: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("Could not close progress database", "err", err)
	}
	s.store = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address()
}

// ActiveSessions returns the number of sessions being served.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}
