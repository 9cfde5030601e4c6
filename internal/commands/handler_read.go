package commands

import (
	"context"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

const msgNothingToRead = "There is nothing to read here."

// read returns an item's text. Items inside containers can be read only
// after the player has looked in the container.
func (h *Handler) read(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	it, err := h.find(w, lexicon.VerbRead, cmdCtx.Instruction.Noun)
	if err != nil {
		return "", err
	}

	if !it.Can(game.CapReadable) {
		return "", NewUserError(msgNothingToRead)
	}
	if !readable(w, it) {
		return "", errNotSeen(cmdCtx.Instruction.Noun)
	}

	fallback := it.Description
	if fallback == "" {
		fallback = msgNothingToRead
	}
	return respond(ctx, w, it, lexicon.VerbRead, fallback), nil
}
