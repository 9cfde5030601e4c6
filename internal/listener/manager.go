package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner plays one game over a connection. An empty profile leaves it
// to the runner to ask the player who they are.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter, profile string) error
}

// ConnectionManager hands accepted connections to the session runner and
// counts the ones still open.
type ConnectionManager struct {
	sessions SessionRunner
	open     atomic.Int64
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

// AcceptConnection blocks until the session on conn ends.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter, profile string) {
	open := m.open.Add(1)
	defer m.open.Add(-1)

	slog.DebugContext(ctx, "connection accepted", "profile", profile, "open", open)
	if err := m.sessions.RunSession(ctx, conn, profile); err != nil {
		slog.WarnContext(ctx, "player session", "profile", profile, "error", err)
	}
}

// Open is the number of connections currently in a session.
func (m *ConnectionManager) Open() int {
	return int(m.open.Load())
}
