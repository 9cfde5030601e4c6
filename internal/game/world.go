package game

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/lexicon"
	"github.com/pixil98/go-peril/internal/storage"
)

// WorldState is everything that changes during a session. It is plain data:
// rooms and items live in flat maps keyed by id and refer to each other by
// id, so a snapshot is a deep copy and serializes without loss.
type WorldState struct {
	Rooms     map[string]*Room         `json:"rooms"`
	Items     map[string]*Item         `json:"items"`
	Player    Player                   `json:"player"`
	Flags     map[string]int           `json:"flags"`
	Mode      Mode                     `json:"mode"`
	Dialogues map[string]DialogueState `json:"dialogues"`
}

// NewWorldState builds the initial world from the content stores.
func NewWorldState(rooms storage.Storer[*Room], items storage.Storer[*Item], start string) (*WorldState, error) {
	return BuildWorld(rooms.GetAll(), items.GetAll(), start)
}

// BuildWorld builds the initial world from room and item definitions keyed
// by id. The definitions are copied, never retained.
func BuildWorld(rooms map[string]*Room, items map[string]*Item, start string) (*WorldState, error) {
	w := &WorldState{
		Rooms:     make(map[string]*Room, len(rooms)),
		Items:     make(map[string]*Item, len(items)),
		Player:    Player{Location: start},
		Flags:     map[string]int{},
		Dialogues: map[string]DialogueState{},
	}

	el := errors.NewErrorList()

	for id, def := range rooms {
		r := def.clone()
		r.Id = id
		r.BeenBefore = false
		exits, err := canonicalKeys(r.Exits)
		if err != nil {
			el.Add(fmt.Errorf("room %s exits: %w", id, err))
		}
		r.Exits = exits
		gates, err := canonicalKeys(r.AccessPoints)
		if err != nil {
			el.Add(fmt.Errorf("room %s access points: %w", id, err))
		}
		r.AccessPoints = gates
		w.Rooms[id] = r
	}

	for id, def := range items {
		it := def.clone()
		if it.Handle == "" {
			it.Handle = id
		}
		if it.Handle != id {
			el.Add(fmt.Errorf("item %s: handle %q must match its id", id, it.Handle))
		}
		if _, ok := w.Rooms[id]; ok || id == LocationInventory {
			el.Add(fmt.Errorf("item %s: id is already used as a location", id))
		}
		w.Items[id] = it
	}

	if _, ok := w.Rooms[start]; !ok {
		el.Add(fmt.Errorf("start room %q: %w", start, ErrUnknownRoom))
	}

	for _, r := range w.Rooms {
		for dir, dest := range r.Exits {
			if _, ok := w.Rooms[dest]; !ok {
				el.Add(fmt.Errorf("room %s exit %s -> %q: %w", r.Id, dir, dest, ErrUnknownRoom))
			}
		}
	}

	for _, id := range w.ItemIds() {
		it := w.Items[id]
		if !w.isLocation(it.Location) {
			el.Add(fmt.Errorf("item %s location %q: %w", id, it.Location, ErrUnknownRoom))
		}
		for _, c := range it.Contains {
			held, ok := w.Items[c]
			if !ok {
				el.Add(fmt.Errorf("container %s lists %q: %w", id, c, ErrUnknownItem))
				continue
			}
			if held.Location != id {
				el.Add(fmt.Errorf("container %s lists %s, but it is located in %q", id, c, held.Location))
			}
		}
		if it.Unlocks != "" {
			if _, ok := w.Items[it.Unlocks]; !ok {
				el.Add(fmt.Errorf("item %s unlocks %q: %w", id, it.Unlocks, ErrUnknownItem))
			}
		}
		if it.Dialogue != nil && it.Dialogue.Gives != "" {
			if _, ok := w.Items[it.Dialogue.Gives]; !ok {
				el.Add(fmt.Errorf("item %s gives %q: %w", id, it.Dialogue.Gives, ErrUnknownItem))
			}
		}
	}

	if err := el.Err(); err != nil {
		return nil, err
	}

	w.rebuildContents()
	w.syncGates()

	if err := w.CheckOwnership(); err != nil {
		return nil, err
	}

	return w, nil
}

func canonicalKeys[V any](m map[string]V) (map[string]V, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		dir, ok := lexicon.ResolveDirection(k)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", k)
		}
		if _, dup := out[dir]; dup {
			return nil, fmt.Errorf("direction %s is declared more than once", dir)
		}
		out[dir] = v
	}
	return out, nil
}

// rebuildContents derives every contains list and the inventory from item
// locations. Authored order is kept and unlisted items follow in id order.
func (w *WorldState) rebuildContents() {
	ids := w.ItemIds()
	w.Player.Inventory = nil
	for _, id := range ids {
		it := w.Items[id]
		if !it.Properties.Container {
			continue
		}
		var contents []string
		for _, c := range it.Contains {
			if w.Items[c].Location == id && indexOf(contents, c) < 0 {
				contents = append(contents, c)
			}
		}
		for _, c := range ids {
			if w.Items[c].Location == id && indexOf(contents, c) < 0 {
				contents = append(contents, c)
			}
		}
		it.Contains = contents
	}
	for _, id := range ids {
		if w.Items[id].Location == LocationInventory {
			w.Player.Inventory = append(w.Player.Inventory, id)
		}
	}
}

// syncGates copies the locked state of each access-point item onto the room
// gates that name it.
func (w *WorldState) syncGates() {
	for _, r := range w.Rooms {
		for dir, gate := range r.AccessPoints {
			if it, ok := w.Items[gate.Id]; ok && it.Can(CapAccessPoint) {
				gate.Locked = it.Properties.Locked
				r.AccessPoints[dir] = gate
			}
		}
	}
}

func (w *WorldState) isLocation(loc string) bool {
	if loc == LocationInventory {
		return true
	}
	if _, ok := w.Rooms[loc]; ok {
		return true
	}
	c, ok := w.Items[loc]
	return ok && c.Properties.Container
}

// CurrentRoom returns the room the player stands in.
func (w *WorldState) CurrentRoom() *Room {
	return w.Rooms[w.Player.Location]
}

// Room looks up a room by id.
func (w *WorldState) Room(id string) (*Room, error) {
	r, ok := w.Rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", id, ErrUnknownRoom)
	}
	return r, nil
}

// Item looks up an item by id.
func (w *WorldState) Item(id string) (*Item, error) {
	it, ok := w.Items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, ErrUnknownItem)
	}
	return it, nil
}

// ItemIds returns every item id in sorted order. This is the canonical
// enumeration order wherever ties must be broken.
func (w *WorldState) ItemIds() []string {
	ids := make([]string, 0, len(w.Items))
	for id := range w.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ItemsAt returns the items whose location is loc, in id order. Container
// contents are better read from the container's own list.
func (w *WorldState) ItemsAt(loc string) []*Item {
	var out []*Item
	for _, id := range w.ItemIds() {
		if it := w.Items[id]; it.Location == loc {
			out = append(out, it)
		}
	}
	return out
}

// Inventory returns the carried items in inventory order.
func (w *WorldState) Inventory() []*Item {
	out := make([]*Item, 0, len(w.Player.Inventory))
	for _, id := range w.Player.Inventory {
		if it, ok := w.Items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
