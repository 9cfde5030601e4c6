package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pixil98/go-peril/internal/autosave"
	"github.com/pixil98/go-peril/internal/display"
	"github.com/pixil98/go-peril/internal/storage"
)

const metaUsage = "Commands: /save <slot>, /load [slot], /delete <slot>, /saves, /recent, /quit."

// meta runs a slash command. The second result is true when the player
// asked to leave.
func (s *Session) meta(ctx context.Context, line string) (string, bool) {
	fields := strings.Fields(strings.ToLower(line))
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/save":
		return s.save(ctx, arg), false
	case "/load":
		return s.load(ctx, arg), false
	case "/delete":
		return s.delete(ctx, arg), false
	case "/saves":
		return s.list(ctx), false
	case "/recent":
		return s.listRecent(), false
	case "/quit":
		return "Goodbye!", true
	default:
		return metaUsage, false
	}
}

func (s *Session) checkSlot(slot string) string {
	if slot == "" {
		return fmt.Sprintf("Which slot? Choose one of: %s.", strings.Join(s.slots, ", "))
	}
	if !slices.Contains(s.slots, slot) {
		return fmt.Sprintf("There is no slot named %s. Choose one of: %s.", slot, strings.Join(s.slots, ", "))
	}
	return ""
}

func (s *Session) save(ctx context.Context, slot string) string {
	if msg := s.checkSlot(slot); msg != "" {
		return msg
	}

	rec, err := autosave.NewRecord(slot, s.world)
	if err == nil {
		err = s.saves.Save(ctx, s.profile, rec)
	}
	if err != nil {
		slog.WarnContext(ctx, "saving game", "profile", s.profile, "slot", slot, "error", err)
		return "The game could not be saved."
	}
	return fmt.Sprintf("Saved to %s.", slot)
}

func (s *Session) load(ctx context.Context, slot string) string {
	if slot == "" {
		recs, err := s.saves.List(ctx, s.profile)
		if err != nil {
			slog.WarnContext(ctx, "listing saves", "profile", s.profile, "error", err)
			return "Your saves could not be listed."
		}
		if len(recs) == 0 {
			return "You have no saved games."
		}
		sel := storage.NewSaveSelector(recs)
		if s.in == nil {
			return "Which game? Use /load <slot>:\n" + strings.Join(sel.Lines(), "\n")
		}
		slot, err = sel.Prompt(s.in, s.out, "Which game do you want to load?")
		if err != nil {
			return "Nothing was loaded."
		}
	} else if slot != storage.AutosaveSlot {
		if msg := s.checkSlot(slot); msg != "" {
			return msg
		}
	}

	rec, err := s.saves.Load(ctx, s.profile, slot)
	if errors.Is(err, storage.ErrSaveNotFound) {
		return fmt.Sprintf("There is no game saved in %s.", slot)
	}
	if err != nil {
		slog.WarnContext(ctx, "loading game", "profile", s.profile, "slot", slot, "error", err)
		return "The game could not be loaded."
	}

	if _, err := s.restore(rec); err != nil {
		slog.WarnContext(ctx, "restoring game", "profile", s.profile, "slot", slot, "error", err)
		return fmt.Sprintf("The game in %s is damaged and could not be loaded.", slot)
	}

	return fmt.Sprintf("Loaded %s.\n\n%s", slot, s.Look(ctx))
}

func (s *Session) delete(ctx context.Context, slot string) string {
	if slot != storage.AutosaveSlot {
		if msg := s.checkSlot(slot); msg != "" {
			return msg
		}
	}

	err := s.saves.Delete(ctx, s.profile, slot)
	if errors.Is(err, storage.ErrSaveNotFound) {
		return fmt.Sprintf("There is no game saved in %s.", slot)
	}
	if err != nil {
		slog.WarnContext(ctx, "deleting game", "profile", s.profile, "slot", slot, "error", err)
		return "The save could not be deleted."
	}
	return fmt.Sprintf("Deleted %s.", slot)
}

func (s *Session) list(ctx context.Context) string {
	recs, err := s.saves.List(ctx, s.profile)
	if err != nil {
		slog.WarnContext(ctx, "listing saves", "profile", s.profile, "error", err)
		return "Your saves could not be listed."
	}
	if len(recs) == 0 {
		return "You have no saved games."
	}
	return "Saved games:\n" + strings.Join(storage.NewSaveSelector(recs).Lines(), "\n")
}

func (s *Session) listRecent() string {
	cmds := s.recent.List()
	if len(cmds) == 0 {
		return "You have not done anything yet."
	}
	return "Recent commands:\n" + display.Bullets(cmds)
}
