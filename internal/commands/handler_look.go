package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// Describe renders the current room without running a command, so it works
// while a keypad prompt is pending and never changes w.
func (h *Handler) Describe(ctx context.Context, w *game.WorldState) string {
	resp, err := h.look(ctx, &CommandContext{World: w, Instruction: Instruction{Verb: lexicon.VerbLook}})
	if err != nil {
		slog.WarnContext(ctx, "describing room", "error", err)
		return msgInternal
	}
	return resp
}

// look describes the current room, what lies in it, and the ways out.
func (h *Handler) look(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	room := w.CurrentRoom()
	if room == nil {
		return "", fmt.Errorf("player location %q: %w", w.Player.Location, game.ErrUnknownRoom)
	}

	var sb strings.Builder
	sb.WriteString(roomTitle(room))
	if room.Description != "" {
		sb.WriteString("\n\n")
		sb.WriteString(room.Description)
	}
	if items := w.ItemsAt(room.Id); len(items) > 0 {
		fmt.Fprintf(&sb, "\n\nYou see: %s.", listNames(items))
	}
	if exits := room.OpenExits(); len(exits) > 0 {
		fmt.Fprintf(&sb, "\nExits: %s.", strings.Join(exits, ", "))
	} else {
		sb.WriteString("\nThere is no obvious way out.")
	}
	return sb.String(), nil
}

func roomTitle(r *game.Room) string {
	if r.Header != "" {
		return r.Header
	}
	return r.FirstTimeMessage
}

// lookIn lists a container's contents and remembers that the player looked.
func (h *Handler) lookIn(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	c, err := h.findVisible(w, "look in", cmdCtx.Instruction.Noun)
	if err != nil {
		return "", err
	}

	if !c.Can(game.CapContainer) {
		return "", NewUserErrorf("You cannot look inside the %s.", label(c))
	}
	if !c.IsOpen() {
		return "", NewUserErrorf("The %s is closed.", label(c))
	}

	w.SetFlag(game.LookedInFlag(c.Handle), 1)

	contents := itemsIn(w, c)
	if len(contents) == 0 {
		return fmt.Sprintf("The %s is empty.", label(c)), nil
	}
	return fmt.Sprintf("Inside the %s, you see: %s.", label(c), listNames(contents)), nil
}

// examine describes a visible item.
func (h *Handler) examine(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	it, err := h.findVisible(w, lexicon.VerbExamine, cmdCtx.Instruction.Noun)
	if err != nil {
		return "", err
	}

	fallback := it.Description
	if fallback == "" {
		fallback = "There is nothing particularly interesting."
	}
	return respond(ctx, w, it, lexicon.VerbExamine, fallback), nil
}
