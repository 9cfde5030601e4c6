package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

const msgNothingToSay = "It does not seem to have anything to say."

// talk advances a character's conversation: idle, then intro, then terminal.
func (h *Handler) talk(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	phrase := cmdCtx.Instruction.Noun
	if phrase == "" {
		return "", errNoNoun(lexicon.VerbTalk)
	}

	it := h.resolver.FindItem(phrase, w)
	if it == nil || !it.Can(game.CapTalker) {
		if c := characterNamedIn(w, phrase); c != nil {
			it = c
		}
	}
	if it == nil {
		return "", errNotSeen(phrase)
	}

	d := it.Dialogue
	if d == nil {
		return respond(ctx, w, it, lexicon.VerbTalk, msgNothingToSay), nil
	}

	switch w.Dialogue(it.Handle) {
	case game.DialogueIdle:
		w.SetDialogue(it.Handle, game.DialogueIntro)
		return render(ctx, d.Intro, it, w), nil

	case game.DialogueIntro:
		w.SetDialogue(it.Handle, game.DialogueTerminal)
		text := render(ctx, d.Final, it, w)
		if d.Gives != "" {
			gift, err := w.Item(d.Gives)
			if err != nil {
				return "", err
			}
			if !w.Player.Carries(gift.Handle) {
				if err := w.AddToInventory(gift.Handle); err != nil {
					return "", err
				}
				text += fmt.Sprintf("\n\nYou receive the %s.", label(gift))
			}
		}
		return text, nil

	default:
		if d.Done != "" {
			return render(ctx, d.Done, it, w), nil
		}
		return render(ctx, d.Final, it, w), nil
	}
}

// characterNamedIn finds a character whose handle or name appears as a word
// sequence inside phrase, e.g. "the guard by the door".
func characterNamedIn(w *game.WorldState, phrase string) *game.Item {
	padded := " " + phrase + " "
	for _, id := range w.ItemIds() {
		it := w.Items[id]
		if !it.Can(game.CapTalker) {
			continue
		}
		for _, field := range matchFields(it) {
			if strings.Contains(padded, " "+field+" ") {
				return it
			}
		}
	}
	return nil
}
