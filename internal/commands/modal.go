package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pixil98/go-peril/internal/game"
)

// modal handles input while an interaction mode is armed. The raw text is
// never parsed as a command. Whatever happens, the mode is disarmed.
func (h *Handler) modal(ctx context.Context, world *game.WorldState, raw string) (*game.WorldState, string) {
	next := world.Clone()
	mode := next.Mode
	next.Mode = game.Mode{}

	switch mode.Kind {
	case game.ModeKeypad:
		resp, err := h.enterCode(next, mode.Target, strings.TrimSpace(raw))
		if err != nil {
			slog.WarnContext(ctx, "keypad entry", "target", mode.Target, "error", err)
			return next, msgInternal
		}
		return next, resp
	default:
		slog.WarnContext(ctx, "unknown interaction mode", "kind", mode.Kind)
		return next, msgNotUnderstood
	}
}

// enterCode compares a typed code against a keypad and unlocks whatever the
// keypad controls on a match.
func (h *Handler) enterCode(w *game.WorldState, keypadId string, input string) (string, error) {
	pad, err := w.Item(keypadId)
	if err != nil {
		return "", err
	}

	want, ok := pad.KeyCode()
	got, convErr := strconv.Atoi(input)
	if !ok || convErr != nil || got != want {
		return fmt.Sprintf("The %s buzzes. Nothing happens.", label(pad)), nil
	}

	if pad.Unlocks == "" {
		return fmt.Sprintf("The %s beeps, but nothing seems to happen.", label(pad)), nil
	}

	target, err := w.Item(pad.Unlocks)
	if err != nil {
		return "", err
	}
	if err := w.Unlock(target.Handle); err != nil {
		return "", err
	}
	return fmt.Sprintf("The %s beeps. You hear the %s unlock.", label(pad), label(target)), nil
}
