package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// move walks the player through an exit of the current room.
func (h *Handler) move(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	if cmdCtx.Instruction.Noun == "" {
		return "", NewUserError("Where do you want to go?")
	}

	direction, ok := lexicon.ResolveDirection(cmdCtx.Instruction.Noun)
	if !ok {
		return "", NewUserError("Unknown direction.")
	}

	from := w.CurrentRoom()
	if from == nil {
		return "", fmt.Errorf("player location %q: %w", w.Player.Location, game.ErrUnknownRoom)
	}

	dest, ok := from.Exits[direction]
	if !ok {
		return "", NewUserErrorf("You cannot go %s from here.", direction)
	}

	if gate, ok := from.Gate(direction); ok && gate.Locked {
		if gate.Id == game.EntranceGate {
			return "", NewUserError("The entrance is locked. You will need to find a way to open it.")
		}
		return "", NewUserError("The way is locked.")
	}

	first, err := w.Visit(dest)
	if err != nil {
		return "", err
	}
	return arrival(w.CurrentRoom(), first), nil
}

// arrival is the text shown on entering a room.
func arrival(r *game.Room, first bool) string {
	var text string
	switch {
	case first && r.FirstTimeMessage != "":
		text = r.FirstTimeMessage
	case first:
		text = "You enter a new place."
	case r.Header != "":
		text = r.Header
	default:
		text = "You arrive."
	}
	if r.Description != "" {
		text += "\n\n" + r.Description
	}
	return text
}

// CanMove reports whether the player could leave the current room in
// direction right now.
func CanMove(w *game.WorldState, direction string) bool {
	d, ok := lexicon.ResolveDirection(direction)
	if !ok {
		return false
	}
	r := w.CurrentRoom()
	if r == nil {
		return false
	}
	if _, ok := r.Exits[d]; !ok {
		return false
	}
	gate, ok := r.Gate(d)
	return !ok || !gate.Locked
}
