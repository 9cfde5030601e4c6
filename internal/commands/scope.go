package commands

import (
	"strings"

	"github.com/pixil98/go-peril/internal/game"
)

// Reach describes how the player can get at an item.
type Reach int

const (
	ReachNone      Reach = iota // not here, or shut away
	ReachInventory              // carried
	ReachRoom                   // on the floor of the current room
	ReachContainer              // inside an open container that is itself within reach
)

// reachOf reports how the player can reach it in w.
func reachOf(w *game.WorldState, it *game.Item) Reach {
	switch {
	case it.Location == game.LocationInventory:
		return ReachInventory
	case it.Location == w.Player.Location:
		return ReachRoom
	}
	c, ok := w.Items[it.Location]
	if !ok || !c.IsOpen() {
		return ReachNone
	}
	if c.Location == game.LocationInventory || c.Location == w.Player.Location {
		return ReachContainer
	}
	return ReachNone
}

// visible reports whether the player can see it: carried, in the room, or
// inside an open container in the room or inventory.
func visible(w *game.WorldState, it *game.Item) bool {
	return reachOf(w, it) != ReachNone
}

// readable reports whether the player can read it. Container contents must
// also have been looked at.
func readable(w *game.WorldState, it *game.Item) bool {
	switch reachOf(w, it) {
	case ReachInventory, ReachRoom:
		return true
	case ReachContainer:
		return w.IsSet(game.LookedInFlag(it.Location))
	}
	return false
}

// label is how responses refer to an item.
func label(it *game.Item) string {
	return strings.ReplaceAll(it.Handle, "_", " ")
}

// listNames joins item names for listings.
func listNames(items []*game.Item) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.DisplayName())
	}
	return strings.Join(names, ", ")
}

// itemsIn returns the items held by a container, in its own order.
func itemsIn(w *game.WorldState, c *game.Item) []*game.Item {
	out := make([]*game.Item, 0, len(c.Contains))
	for _, id := range c.Contains {
		if it, ok := w.Items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
