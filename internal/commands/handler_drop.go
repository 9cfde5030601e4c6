package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peril/internal/lexicon"
)

// drop leaves a carried item in the current room.
func (h *Handler) drop(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	it, err := h.find(w, lexicon.VerbDrop, cmdCtx.Instruction.Noun)
	if err != nil {
		return "", err
	}

	if !w.Player.Carries(it.Handle) {
		return "", NewUserErrorf("You are not carrying the %s.", label(it))
	}

	if err := w.RemoveFromInventory(it.Handle); err != nil {
		return "", err
	}
	if err := w.PlaceInRoom(it.Handle, w.Player.Location); err != nil {
		return "", err
	}
	return fmt.Sprintf("You drop the %s.", label(it)), nil
}
