package main

import (
	"context"
	"testing"

	"github.com/pixil98/go-peril/internal/commands"
	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/session"
	"github.com/pixil98/go-peril/internal/storage"
	"github.com/pixil98/go-testutil"
)

func TestExitStates(t *testing.T) {
	rooms := map[string]*game.Room{
		"porch": {
			Header:       "Porch",
			Exits:        map[string]string{"north": "hall", "east": "shed"},
			AccessPoints: map[string]game.AccessPoint{"east": {Id: "shed_door", Locked: true}},
		},
		"hall": {Header: "Hall", Exits: map[string]string{"south": "porch"}},
		"shed": {Header: "Shed", Exits: map[string]string{"west": "porch"}},
	}
	code := 3
	items := map[string]*game.Item{
		"shed_door": {
			Name:       "Shed Door",
			Location:   "porch",
			Tags:       []string{game.TagAccessPoint},
			Code:       &code,
			Properties: game.Properties{Locked: true},
		},
	}
	w, err := game.BuildWorld(rooms, items, "porch")
	if err != nil {
		t.Fatalf("building world: %v", err)
	}

	saves, err := storage.NewFileSaveStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	s := session.NewManager(commands.NewHandler(), w, saves).NewSession("ada")

	tests := map[string]struct {
		exp bool
	}{
		"north": {exp: true},
		"east":  {exp: false},
		"south": {exp: false},
		"up":    {exp: false},
	}

	states := exitStates(s)
	for dir, tt := range tests {
		t.Run(dir, func(t *testing.T) {
			testutil.AssertEqual(t, "can move", states[dir], tt.exp)
		})
	}

	s.Move(context.Background(), "north")
	testutil.AssertEqual(t, "south after moving", exitStates(s)["south"], true)
}
