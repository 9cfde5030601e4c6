package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-peril/internal"
	"github.com/pixil98/go-peril/internal/commands"
	"github.com/pixil98/go-peril/internal/display"
	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/storage"
)

type Session struct {
	id       uuid.UUID
	in       *bufio.Scanner
	out      io.Writer
	profile  string
	world    *game.WorldState
	handler  *commands.Handler
	saves    storage.SaveStore
	autosave Autosaver
	slots    []string
	recent   Recent
}

// World is the session's current world.
func (s *Session) World() *game.WorldState {
	return s.world
}

// resume offers to continue from the profile's autosave, if there is one.
func (s *Session) resume(ctx context.Context) error {
	rec, err := s.saves.Load(ctx, s.profile, storage.AutosaveSlot)
	if errors.Is(err, storage.ErrSaveNotFound) {
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "loading autosave", "profile", s.profile, "error", err)
		return nil
	}

	ok, err := internal.PromptYN(s.in, s.out, fmt.Sprintf("Resume your game in %s (Y/N)? ", rec.Location))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if _, err := s.restore(rec); err != nil {
		slog.WarnContext(ctx, "restoring autosave", "profile", s.profile, "error", err)
		return s.writeLine("Your saved game could not be restored. Starting fresh.")
	}
	return nil
}

// Play runs the read-evaluate-print loop.
func (s *Session) Play(ctx context.Context) error {
	if err := s.writeLine(s.Look(ctx)); err != nil {
		return err
	}

	for {
		if err := s.prompt(); err != nil {
			return err
		}

		line, err := internal.ReadLine(s.in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		resp, quit := s.Submit(ctx, line)
		if err := s.writeLine(resp); err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Submit runs one line of player input, either a slash command or game
// text. The second result is true when the player asked to leave.
func (s *Session) Submit(ctx context.Context, line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	if strings.HasPrefix(line, "/") {
		return s.meta(ctx, line)
	}

	s.recent.Add(line)
	return s.evaluate(ctx, line), false
}

// Move walks the player in direction without going through the parser.
func (s *Session) Move(ctx context.Context, direction string) string {
	next, resp := s.handler.Move(ctx, s.world, direction)
	s.commit(ctx, next)
	return resp
}

// Look describes the current room.
func (s *Session) Look(ctx context.Context) string {
	return s.handler.Describe(ctx, s.world)
}

// Recent lists the last distinct commands, most recent first.
func (s *Session) Recent() []string {
	return s.recent.List()
}

func (s *Session) evaluate(ctx context.Context, line string) string {
	next, resp := s.handler.Evaluate(ctx, s.world, line)
	s.commit(ctx, next)
	return resp
}

// commit adopts next and autosaves it when it differs from the current
// world.
func (s *Session) commit(ctx context.Context, next *game.WorldState) {
	if next == s.world {
		return
	}
	s.world = next
	if s.autosave != nil {
		s.autosave.Publish(ctx, s.profile, next)
	}
}

// restore swaps in the world stored in rec. The current world is kept when
// the record does not decode.
func (s *Session) restore(rec *storage.SaveRecord) (*game.Snapshot, error) {
	snap, err := game.DecodeSnapshot(rec.Data)
	if err != nil {
		return nil, err
	}
	s.world = snap.World
	return snap, nil
}

func (s *Session) prompt() error {
	prompt := "> "
	if s.world.Mode.Armed() {
		prompt = "code> "
	}
	_, err := io.WriteString(s.out, prompt)
	return err
}

func (s *Session) writeLine(msg string) error {
	if msg == "" {
		return nil
	}
	_, err := io.WriteString(s.out, display.Wrap(display.Capitalize(msg))+"\n\n")
	return err
}
