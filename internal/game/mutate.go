package game

import (
	"fmt"
)

// The helpers below keep the single-owner invariant: an item's Location and
// the list that holds it always agree. They do not check game rules such as
// capacity or open state; callers do that first.

// AddToInventory moves an item from wherever it is into the inventory.
func (w *WorldState) AddToInventory(id string) error {
	it, err := w.Item(id)
	if err != nil {
		return err
	}
	w.detach(it)
	if !w.Player.Carries(id) {
		w.Player.Inventory = append(w.Player.Inventory, id)
	}
	it.Location = LocationInventory
	return nil
}

// RemoveFromInventory takes an item off the inventory list only. The caller
// must place it somewhere straight after.
func (w *WorldState) RemoveFromInventory(id string) error {
	if _, err := w.Item(id); err != nil {
		return err
	}
	w.Player.Inventory = without(w.Player.Inventory, id)
	return nil
}

// PlaceInRoom moves an item to the floor of a room.
func (w *WorldState) PlaceInRoom(id string, roomId string) error {
	it, err := w.Item(id)
	if err != nil {
		return err
	}
	if _, err := w.Room(roomId); err != nil {
		return err
	}
	w.detach(it)
	it.Location = roomId
	return nil
}

// PlaceInContainer moves an item into a container.
func (w *WorldState) PlaceInContainer(id string, containerId string) error {
	it, err := w.Item(id)
	if err != nil {
		return err
	}
	c, err := w.Item(containerId)
	if err != nil {
		return err
	}
	if !c.Properties.Container {
		return fmt.Errorf("item %s is not a container", containerId)
	}
	if id == containerId {
		return fmt.Errorf("item %s cannot contain itself", id)
	}
	if w.Within(containerId, id) {
		return fmt.Errorf("item %s is inside %s", containerId, id)
	}
	w.detach(it)
	if !c.Holds(id) {
		c.Contains = append(c.Contains, id)
	}
	it.Location = containerId
	return nil
}

// Within reports whether item id sits somewhere inside container ancestor,
// directly or through nested containers.
func (w *WorldState) Within(id, ancestor string) bool {
	it, ok := w.Items[id]
	for steps := 0; ok && steps <= len(w.Items); steps++ {
		if it.Location == ancestor {
			return true
		}
		it, ok = w.Items[it.Location]
	}
	return false
}

// detach removes an item from the list that currently holds it.
func (w *WorldState) detach(it *Item) {
	if it.Location == LocationInventory {
		w.Player.Inventory = without(w.Player.Inventory, it.Handle)
		return
	}
	if c, ok := w.Items[it.Location]; ok {
		c.Contains = without(c.Contains, it.Handle)
	}
}

// SetOpen sets the open state of a container.
func (w *WorldState) SetOpen(id string, open bool) error {
	it, err := w.Item(id)
	if err != nil {
		return err
	}
	it.Properties.Open = open
	return nil
}

// Unlock unlocks an item and every room gate that names it.
func (w *WorldState) Unlock(id string) error {
	it, err := w.Item(id)
	if err != nil {
		return err
	}
	it.Properties.Locked = false
	for _, r := range w.Rooms {
		for dir, gate := range r.AccessPoints {
			if gate.Id == id {
				gate.Locked = false
				r.AccessPoints[dir] = gate
			}
		}
	}
	return nil
}

// SetFlag records a named fact.
func (w *WorldState) SetFlag(name string, value int) {
	if w.Flags == nil {
		w.Flags = map[string]int{}
	}
	w.Flags[name] = value
}

// Flag returns a named fact, zero when unset.
func (w *WorldState) Flag(name string) int {
	return w.Flags[name]
}

// IsSet reports whether a flag holds a non-zero value.
func (w *WorldState) IsSet(name string) bool {
	return w.Flag(name) != 0
}

// LookedInFlag names the flag set once the player has looked inside a container.
func LookedInFlag(containerId string) string {
	return "looked_in_" + containerId
}

// Dialogue returns the conversation progress with a character.
func (w *WorldState) Dialogue(id string) DialogueState {
	return w.Dialogues[id]
}

// SetDialogue records conversation progress with a character.
func (w *WorldState) SetDialogue(id string, s DialogueState) {
	if w.Dialogues == nil {
		w.Dialogues = map[string]DialogueState{}
	}
	w.Dialogues[id] = s
}

// Visit moves the player into a room and reports whether this is the first visit.
func (w *WorldState) Visit(roomId string) (bool, error) {
	r, err := w.Room(roomId)
	if err != nil {
		return false, err
	}
	first := !r.BeenBefore
	r.BeenBefore = true
	w.Player.Location = roomId
	return first, nil
}
