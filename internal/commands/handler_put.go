package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// put moves a carried item into a container within reach.
func (h *Handler) put(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	in := cmdCtx.Instruction

	it, err := h.find(w, lexicon.VerbPut, in.Noun)
	if err != nil {
		return "", err
	}
	if !w.Player.Carries(it.Handle) {
		return "", NewUserErrorf("You are not holding the %s.", label(it))
	}
	if in.Target == "" {
		return "", NewUserErrorf("What do you want to put the %s in?", label(it))
	}

	c, err := h.findVisible(w, lexicon.VerbPut, in.Target)
	if err != nil {
		return "", err
	}
	if c.Handle == it.Handle {
		return "", NewUserErrorf("You cannot put the %s inside itself.", label(it))
	}
	if w.Within(c.Handle, it.Handle) {
		return "", NewUserErrorf("You cannot put the %s inside the %s.", label(it), label(c))
	}
	if !c.Can(game.CapContainer) {
		return "", NewUserErrorf("The %s is not a container.", label(c))
	}
	if !c.IsOpen() {
		return "", NewUserErrorf("The %s is closed.", label(c))
	}
	if c.IsFull() {
		return "", NewUserErrorf("The %s is full.", label(c))
	}

	if err := w.RemoveFromInventory(it.Handle); err != nil {
		return "", err
	}
	if err := w.PlaceInContainer(it.Handle, c.Handle); err != nil {
		return "", err
	}
	return fmt.Sprintf("You put the %s in the %s.", label(it), label(c)), nil
}
