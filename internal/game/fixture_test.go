package game

import (
	"testing"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func testRooms() map[string]*Room {
	return map[string]*Room{
		"apartment_living_room": {
			Header:           "Living Room",
			FirstTimeMessage: "You wake up on the couch.",
			Description:      "Pizza boxes everywhere.",
			Exits:            map[string]string{"n": "hallway", "east": "street"},
			AccessPoints:     map[string]AccessPoint{"east": {Id: "door", Locked: false}},
		},
		"hallway": {
			Header:           "Hallway",
			FirstTimeMessage: "A long hallway stretches out before you.",
			Exits:            map[string]string{"south": "apartment_living_room"},
		},
		"street": {
			Header: "Street",
			Exits:  map[string]string{"west": "apartment_living_room"},
		},
	}
}

func testItems() map[string]*Item {
	return map[string]*Item{
		"box": {
			Name:       "Box",
			Location:   "apartment_living_room",
			Properties: Properties{Container: true, Capacity: intPtr(2)},
			Contains:   []string{"letter"},
		},
		"letter": {
			Name:      "Letter",
			Location:  "box",
			Responses: map[string]string{"read": "Dear tenant..."},
		},
		"key": {
			Name:     "Brass Key",
			Location: "apartment_living_room",
			Tags:     []string{TagKey},
			Code:     intPtr(42),
		},
		"door": {
			Name:       "Door",
			Location:   "apartment_living_room",
			Tags:       []string{TagAccessPoint},
			Code:       intPtr(42),
			Properties: Properties{Mobile: boolPtr(false), Locked: true},
		},
		"couch": {
			Name:       "Couch",
			Location:   "apartment_living_room",
			Properties: Properties{Mobile: boolPtr(false)},
		},
	}
}

func newTestWorld(t *testing.T) *WorldState {
	t.Helper()
	w, err := BuildWorld(testRooms(), testItems(), "apartment_living_room")
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	return w
}
