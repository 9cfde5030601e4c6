// Package session runs one player's game over a line-oriented connection:
// it picks a profile, feeds input to the engine, handles the slash
// meta-commands for saves, and hands every changed world to the autosaver.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-peril/internal"
	"github.com/pixil98/go-peril/internal/commands"
	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/storage"
)

// Autosaver receives the world after every command that changed it.
type Autosaver interface {
	Publish(ctx context.Context, profile string, w *game.WorldState)
}

type Manager struct {
	handler  *commands.Handler
	world    *game.WorldState
	saves    storage.SaveStore
	autosave Autosaver
	slots    []string

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

type ManagerOpt func(*Manager)

// WithSlots sets the named save slots offered to players.
func WithSlots(slots ...string) ManagerOpt {
	return func(m *Manager) {
		m.slots = slots
	}
}

// WithAutosaver sets where changed worlds are sent.
func WithAutosaver(a Autosaver) ManagerOpt {
	return func(m *Manager) {
		m.autosave = a
	}
}

// NewManager creates a manager whose sessions all begin from world.
func NewManager(h *commands.Handler, world *game.WorldState, saves storage.SaveStore, opts ...ManagerOpt) *Manager {
	m := &Manager{
		handler:  h,
		world:    world,
		saves:    saves,
		slots:    []string{"slot1", "slot2", "slot3"},
		sessions: map[uuid.UUID]*Session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start blocks until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Active is the number of running sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// RunSession plays a game over conn until the player quits, the input ends,
// or ctx is cancelled. A valid profile skips the name prompt; otherwise the
// player is asked for one.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter, profile string) error {
	// Closing the connection unblocks a pending read on shutdown.
	if c, ok := conn.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stop()
	}

	in := bufio.NewScanner(conn)

	if _, err := io.WriteString(conn, "Welcome to Peril!\n"); err != nil {
		return err
	}
	profile = strings.ToLower(profile)
	if profile == "" || storage.ValidateIdentifier(profile) != nil {
		var err error
		if profile, err = promptProfile(in, conn); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(conn, "Welcome back, %s.\n", profile); err != nil {
		return err
	}

	s := m.newSession(in, conn, profile)
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
	}()

	slog.InfoContext(ctx, "session started", "session", s.id, "profile", profile)
	defer slog.InfoContext(ctx, "session ended", "session", s.id, "profile", profile)

	if err := s.resume(ctx); err != nil {
		return err
	}
	return s.Play(ctx)
}

// NewSession starts a session for profile that is driven through Submit and
// Move rather than a connection.
func (m *Manager) NewSession(profile string) *Session {
	return m.newSession(nil, nil, profile)
}

func (m *Manager) newSession(in *bufio.Scanner, out io.Writer, profile string) *Session {
	return &Session{
		id:       uuid.New(),
		in:       in,
		out:      out,
		profile:  profile,
		world:    m.world,
		handler:  m.handler,
		saves:    m.saves,
		autosave: m.autosave,
		slots:    m.slots,
	}
}

func promptProfile(in *bufio.Scanner, out io.Writer) (string, error) {
	name, err := internal.Prompt(in, out, "By what name do you wish to be known? ",
		internal.WithMaxTries(5),
		internal.WithValidator(func(str string) (bool, string) {
			if str == "" || storage.ValidateIdentifier(str) != nil {
				return false, "Invalid name, please use only letters, digits, '_' or '-'.\n"
			}
			return true, ""
		}),
	)
	if err != nil {
		return "", fmt.Errorf("reading profile: %w", err)
	}
	return strings.ToLower(name), nil
}
