package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// take picks an item up, either from the room or from a named container.
func (h *Handler) take(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	in := cmdCtx.Instruction
	if in.Noun == "" {
		return "", errNoNoun(lexicon.VerbTake)
	}
	if in.Target != "" {
		return h.takeFrom(ctx, cmdCtx)
	}

	w := cmdCtx.World
	it, err := h.find(w, lexicon.VerbTake, in.Noun)
	if err != nil {
		return "", err
	}

	switch reachOf(w, it) {
	case ReachInventory:
		return "", NewUserErrorf("You already have the %s.", label(it))
	case ReachNone:
		return "", errNotSeen(in.Noun)
	case ReachContainer:
		if !h.implicitContainerTake || !w.IsSet(game.LookedInFlag(it.Location)) {
			return "", NewUserErrorf("You cannot reach the %s from here.", label(it))
		}
	}

	if it.Can(game.CapFixed) {
		return "", NewUserError(respond(ctx, w, it, lexicon.VerbTake, "That thing will not budge."))
	}

	if err := w.AddToInventory(it.Handle); err != nil {
		return "", err
	}
	return fmt.Sprintf("You take the %s.", label(it)), nil
}

// takeFrom handles "take X from Y".
func (h *Handler) takeFrom(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	in := cmdCtx.Instruction

	c, err := h.findVisible(w, lexicon.VerbTake, in.Target)
	if err != nil {
		return "", err
	}
	if !c.Can(game.CapContainer) {
		return "", NewUserErrorf("The %s is not a container.", label(c))
	}
	if !c.IsOpen() {
		return "", NewUserErrorf("The %s is closed.", label(c))
	}

	it := h.resolver.FindItem(in.Noun, w)
	if it == nil || !c.Holds(it.Handle) {
		return "", NewUserErrorf("There is no %s in the %s.", in.Noun, label(c))
	}
	if it.Can(game.CapFixed) {
		return "", NewUserError(respond(ctx, w, it, lexicon.VerbTake, "That thing will not budge."))
	}

	if err := w.AddToInventory(it.Handle); err != nil {
		return "", err
	}
	return fmt.Sprintf("You take the %s from the %s.", label(it), label(c)), nil
}
