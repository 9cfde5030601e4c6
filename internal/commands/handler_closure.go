package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// open opens a closed container.
func (h *Handler) open(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	it, err := h.findVisible(w, lexicon.VerbOpen, cmdCtx.Instruction.Noun)
	if err != nil {
		return "", err
	}

	if !it.Can(game.CapContainer) {
		if it.Can(game.CapLockable) && it.IsLocked() {
			return "", NewUserErrorf("The %s is locked.", label(it))
		}
		return "", NewUserError(respond(ctx, w, it, lexicon.VerbOpen, "You cannot open that."))
	}
	if it.IsLocked() {
		return "", NewUserErrorf("The %s is locked.", label(it))
	}
	if it.IsOpen() {
		return "", NewUserErrorf("The %s is already open.", label(it))
	}

	if err := w.SetOpen(it.Handle, true); err != nil {
		return "", err
	}
	return fmt.Sprintf("You open the %s.", label(it)), nil
}

// close closes an open container.
func (h *Handler) close(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	it, err := h.findVisible(w, lexicon.VerbClose, cmdCtx.Instruction.Noun)
	if err != nil {
		return "", err
	}

	if !it.Can(game.CapContainer) {
		return "", NewUserError(respond(ctx, w, it, lexicon.VerbClose, "You cannot close that."))
	}
	if !it.IsOpen() {
		return "", NewUserErrorf("The %s is already closed.", label(it))
	}

	if err := w.SetOpen(it.Handle, false); err != nil {
		return "", err
	}
	return fmt.Sprintf("You close the %s.", label(it)), nil
}
