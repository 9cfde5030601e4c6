package commands

import (
	"context"
	"testing"

	"github.com/pixil98/go-peril/internal/game"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// newTestWorld builds a small apartment: a living room with a closed box
// holding a letter, a key and a locked door, a hallway to the north guarded
// by nothing, and a street to the east behind the locked door.
func newTestWorld(t *testing.T) *game.WorldState {
	t.Helper()

	rooms := map[string]*game.Room{
		"apartment_living_room": {
			Header:           "Living Room",
			FirstTimeMessage: "You wake up on the couch.",
			Exits:            map[string]string{"north": "hallway", "east": "street"},
			AccessPoints:     map[string]game.AccessPoint{"east": {Id: "door", Locked: true}},
		},
		"hallway": {
			Header:           "Hallway",
			FirstTimeMessage: "A long hallway stretches out before you.",
			Description:      "The carpet is threadbare.",
			Exits:            map[string]string{"south": "apartment_living_room", "up": "roof"},
			AccessPoints:     map[string]game.AccessPoint{"up": {Id: game.EntranceGate, Locked: true}},
		},
		"street": {
			Header: "Street",
			Exits:  map[string]string{"west": "apartment_living_room"},
		},
		"roof": {
			Header: "Roof",
			Exits:  map[string]string{"down": "hallway"},
		},
	}

	items := map[string]*game.Item{
		"box": {
			Name:       "Box",
			Location:   "apartment_living_room",
			Properties: game.Properties{Container: true, Capacity: intPtr(2)},
			Contains:   []string{"letter"},
		},
		"letter": {
			Name:      "Letter",
			Location:  "box",
			Responses: map[string]string{"read": "Dear tenant, the rent is due."},
		},
		"key": {
			Name:     "Key",
			Location: "apartment_living_room",
			Tags:     []string{game.TagKey},
			Code:     intPtr(42),
		},
		"door": {
			Name:       "Door",
			Location:   "apartment_living_room",
			Tags:       []string{game.TagAccessPoint},
			Code:       intPtr(42),
			Properties: game.Properties{Mobile: boolPtr(false), Locked: true},
		},
		"couch": {
			Name:        "Couch",
			Location:    "apartment_living_room",
			Description: "A lumpy couch.",
			Properties:  game.Properties{Mobile: boolPtr(false)},
			Responses:   map[string]string{"use": "You sit for a while."},
		},
		"brass_lamp": {
			Name:      "Brass Lamp",
			AltHandle: "lamp",
			Location:  "hallway",
			Responses: map[string]string{"examine": "It glows. {{ if .Flags.looked_in_box }}You feel watched.{{ end }}"},
		},
		"guard": {
			Name:     "Guard",
			Location: "hallway",
			Tags:     []string{game.TagNPC},
			Dialogue: &game.Dialogue{
				Intro: "Halt. Who goes there?",
				Final: "Fine, take this and go.",
				Done:  "Move along.",
				Gives: "badge",
			},
		},
		"badge": {
			Name:     "Badge",
			Location: "guard_locker",
		},
		"guard_locker": {
			Name:       "Guard Locker",
			Location:   "street",
			Properties: game.Properties{Container: true, Mobile: boolPtr(false)},
		},
		"keypad": {
			Name:       "Keypad",
			Location:   "hallway",
			Tags:       []string{game.TagKeypad},
			Code:       intPtr(1234),
			Unlocks:    game.EntranceGate,
			Properties: game.Properties{Mobile: boolPtr(false)},
		},
		game.EntranceGate: {
			Name:       "Entrance",
			Location:   "hallway",
			Tags:       []string{game.TagAccessPoint},
			Code:       intPtr(7),
			Properties: game.Properties{Mobile: boolPtr(false), Locked: true},
		},
	}

	w, err := game.BuildWorld(rooms, items, "apartment_living_room")
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	return w
}

// script runs inputs in order and returns the final world and every response.
func script(t *testing.T, h *Handler, w *game.WorldState, inputs ...string) (*game.WorldState, []string) {
	t.Helper()
	var out []string
	for _, in := range inputs {
		var resp string
		w, resp = h.Evaluate(context.Background(), w, in)
		out = append(out, resp)
	}
	return w, out
}
