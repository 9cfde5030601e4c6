package commands

import (
	"context"
	"fmt"
)

func (h *Handler) inventory(ctx context.Context, cmdCtx *CommandContext) (string, error) {
	items := cmdCtx.World.Inventory()
	if len(items) == 0 {
		return "You are not carrying anything.", nil
	}
	return fmt.Sprintf("You are carrying: %s.", listNames(items)), nil
}
