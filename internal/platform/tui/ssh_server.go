package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/core"
	"github.com/vovakirdan/bike-city/internal/game"
	"github.com/vovakirdan/bike-city/internal/storage"
	"github.com/vovakirdan/bike-city/internal/world"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.bikecity/host_key.
	HostKeyPath string

	// DBPath is the path to the player database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Seed fixes the world layout of every session; 0 picks a new one per
	// connection.
	Seed int64

	// Game tunes the sessions.
	Game config.GameConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.bikecity/bikecity.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
		Game:        config.DefaultConfig(),
	}
}

// SSHServer serves one game session per SSH connection. The SSH user name
// picks the player record; unknown names get a fresh player.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	catalog game.Catalog
	riders  *RiderRegistry
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bikecity-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open player database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	catalog, err := game.LoadCatalog(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		catalog: catalog,
		riders:  NewRiderRegistry(),
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			store.Close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".bikecity", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		store.Close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler starts a game session for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Errorln(sshSession, "bikecity needs a terminal, connect with ssh -t")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(sshSession.Context(), s.config.Game.Sync.Timeout())
	defer cancel()

	rec, err := s.rider(ctx, sshSession.User())
	if err != nil {
		s.logger.Error("cannot load player", "user", sshSession.User(), "error", err)
		wish.Errorln(sshSession, "could not load your rider, try again later")
		return nil, nil
	}

	remote := sshSession.RemoteAddr().String()
	if ok, holder := s.riders.Claim(rec.ID, remote); !ok {
		s.logger.Warn("rider already online", "name", rec.Name, "holder", holder)
		wish.Errorln(sshSession, rec.Name+" is already riding from another connection")
		return nil, nil
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := world.Generate(s.config.Game.WorldParams(), seed)

	session, err := game.NewSession(&rec, w, s.store, s.config.Game,
		game.WithLogger(s.logger.With("player", rec.ID)),
		game.WithCatalog(s.catalog),
	)
	if err != nil {
		s.riders.Release(rec.ID)
		s.logger.Error("cannot start session", "user", sshSession.User(), "error", err)
		return nil, nil
	}
	s.logger.Info("rider online", "name", rec.Name, "online", s.riders.Count())

	// The program ends with the connection, not always through the quit key.
	go func() {
		<-sshSession.Context().Done()
		session.Close()
		s.riders.Release(rec.ID)
	}()

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     seed,
	}

	return NewModel(session, s.store, s.config.Game, rt), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// rider returns the player record for an SSH user, creating it on first visit.
func (s *SSHServer) rider(ctx context.Context, user string) (backend.PlayerRecord, error) {
	name := riderName(user)

	rec, err := s.store.FindPlayerByName(ctx, name)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, backend.ErrNotFound) {
		return rec, err
	}

	id, err := s.store.CreatePlayer(ctx, name)
	if err != nil {
		return backend.PlayerRecord{}, err
	}
	s.logger.Info("new rider", "name", name, "id", id)
	return s.store.GetPlayer(ctx, id)
}

// riderName turns an SSH user into a valid player name.
func riderName(user string) string {
	name := strings.TrimSpace(user)
	if name == "" {
		return "rider"
	}
	runes := []rune(name)
	if len(runes) > storage.MaxNameLength {
		name = string(runes[:storage.MaxNameLength])
	}
	return name
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server, then closes the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
