package commands

import (
	"context"
	"fmt"
)

const defaultHelpText = `Try commands like "look", "examine lamp", "take key", "take letter from box",
"put key in box", "open box", "use key on door", "read note", "talk to guard",
"inventory", or a direction such as "north". Chain commands with "and" or "then".
Known verbs: {{ .Verbs | join ", " }}.`

func (h *Handler) help(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	w := cmdCtx.World
	text, err := ExpandTemplate(h.helpText, &ResponseData{Player: w.Player, Flags: w.Flags, Verbs: h.publicVerbs()})
	if err != nil {
		return "", fmt.Errorf("expanding help: %w", err)
	}
	return text, nil
}

func (h *Handler) publicVerbs() []string {
	var out []string
	for _, v := range h.Verbs() {
		if v != verbLookIn {
			out = append(out, v)
		}
	}
	return out
}
