package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// use applies an item on its own, or on a target ("use key on door").
func (h *Handler) use(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	in := cmdCtx.Instruction

	it, err := h.findVisible(w, lexicon.VerbUse, in.Noun)
	if err != nil {
		return "", err
	}

	if in.Target != "" {
		target, err := h.findVisible(w, lexicon.VerbUse, in.Target)
		if err != nil {
			return "", err
		}
		return h.useOn(cmdCtx, it, target)
	}

	if it.Can(game.CapKeypad) {
		w.Mode = game.Mode{Kind: game.ModeKeypad, Target: it.Handle}
		return respond(ctx, w, it, lexicon.VerbUse, fmt.Sprintf("The %s lights up. Enter the code.", label(it))), nil
	}

	text, ok := it.Response(lexicon.VerbUse)
	if !ok {
		return "", NewUserError("You cannot think of a way to use that right now.")
	}
	return render(ctx, text, it, w), nil
}

// useOn unlocks an access point with a key whose code matches.
func (h *Handler) useOn(cmdCtx *CommandContext, key, target *game.Item) (string, error) {
	if !game.Fits(key, target) {
		return "", NewUserError("Nothing happens.")
	}
	if !target.IsLocked() {
		return "", NewUserErrorf("The %s is already unlocked.", label(target))
	}

	if err := cmdCtx.World.Unlock(target.Handle); err != nil {
		return "", err
	}
	return fmt.Sprintf("You unlock the %s with the %s.", label(target), label(key)), nil
}
