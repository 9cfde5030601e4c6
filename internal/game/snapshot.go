package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// SnapshotVersion is the envelope version written by EncodeSnapshot.
const SnapshotVersion = 1

// Snapshot is a saved world wrapped with identifying metadata.
type Snapshot struct {
	Id      string      `json:"id"`
	Version uint        `json:"version"`
	SavedAt time.Time   `json:"saved_at"`
	World   *WorldState `json:"world"`
}

// NewSnapshot wraps a copy of w.
func NewSnapshot(w *WorldState) *Snapshot {
	return &Snapshot{
		Id:      uuid.New().String(),
		Version: SnapshotVersion,
		SavedAt: time.Now().UTC(),
		World:   w.Clone(),
	}
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot and refuses it unless the world inside is
// structurally sound.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshalling snapshot: %w", err)
	}

	el := errors.NewErrorList()
	if s.Version != SnapshotVersion {
		el.Add(fmt.Errorf("unsupported snapshot version %d", s.Version))
	}
	if s.World == nil {
		el.Add(fmt.Errorf("snapshot has no world"))
	} else {
		el.Add(s.World.CheckOwnership())
	}
	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("validating snapshot %s: %w", s.Id, err)
	}

	return &s, nil
}

// Clone returns a deep copy of the world.
func (w *WorldState) Clone() *WorldState {
	c := &WorldState{
		Rooms:  make(map[string]*Room, len(w.Rooms)),
		Items:  make(map[string]*Item, len(w.Items)),
		Player: Player{Location: w.Player.Location, Inventory: cloneStrings(w.Player.Inventory)},
		Mode:   w.Mode,
	}
	for id, r := range w.Rooms {
		c.Rooms[id] = r.clone()
	}
	for id, it := range w.Items {
		c.Items[id] = it.clone()
	}
	if w.Flags != nil {
		c.Flags = make(map[string]int, len(w.Flags))
		for k, v := range w.Flags {
			c.Flags[k] = v
		}
	}
	if w.Dialogues != nil {
		c.Dialogues = make(map[string]DialogueState, len(w.Dialogues))
		for k, v := range w.Dialogues {
			c.Dialogues[k] = v
		}
	}
	return c
}

// CheckOwnership verifies that every item has exactly one owner and that
// item locations and holder lists agree.
func (w *WorldState) CheckOwnership() error {
	el := errors.NewErrorList()

	if _, ok := w.Rooms[w.Player.Location]; !ok {
		el.Add(fmt.Errorf("player location %q: %w", w.Player.Location, ErrUnknownRoom))
	}

	holders := map[string]int{}
	for i, id := range w.Player.Inventory {
		if _, ok := w.Items[id]; !ok {
			el.Add(fmt.Errorf("inventory holds %q: %w", id, ErrUnknownItem))
		}
		if indexOf(w.Player.Inventory[:i], id) >= 0 {
			el.Add(fmt.Errorf("item %s is in the inventory twice", id))
		}
		holders[id]++
	}

	for _, cid := range w.ItemIds() {
		c := w.Items[cid]
		if len(c.Contains) > 0 && !c.Properties.Container {
			el.Add(fmt.Errorf("item %s holds items but is not a container", cid))
		}
		for _, id := range c.Contains {
			holders[id]++
			it, ok := w.Items[id]
			if !ok {
				el.Add(fmt.Errorf("container %s holds %q: %w", cid, id, ErrUnknownItem))
				continue
			}
			if it.Location != cid {
				el.Add(fmt.Errorf("container %s holds %s, but it is located in %q", cid, id, it.Location))
			}
		}
	}

	for _, id := range w.ItemIds() {
		it := w.Items[id]
		if !w.isLocation(it.Location) {
			el.Add(fmt.Errorf("item %s location %q is not a room, container, or the inventory", id, it.Location))
			continue
		}
		_, inRoom := w.Rooms[it.Location]
		switch {
		case inRoom && holders[id] != 0:
			el.Add(fmt.Errorf("item %s is in room %s and also held elsewhere", id, it.Location))
		case !inRoom && holders[id] != 1:
			el.Add(fmt.Errorf("item %s is held %d times, expected once", id, holders[id]))
		case it.Location == LocationInventory && !w.Player.Carries(id):
			el.Add(fmt.Errorf("item %s is located in the inventory but not carried", id))
		}
	}

	return el.Err()
}
