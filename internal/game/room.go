package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// EntranceGate is the access point id that gets its own locked-exit message.
const EntranceGate = "entrance"

// AccessPoint gates a single exit of a room.
type AccessPoint struct {
	Id     string `json:"id"`
	Locked bool   `json:"locked"`
}

// Room is a location the player can stand in.
type Room struct {
	Id               string                 `json:"id"`
	Header           string                 `json:"header"`
	FirstTimeMessage string                 `json:"first_time_message"`
	Description      string                 `json:"description,omitempty"`
	BeenBefore       bool                   `json:"been_before"`
	Exits            map[string]string      `json:"exits,omitempty"`         // direction -> room id
	AccessPoints     map[string]AccessPoint `json:"access_points,omitempty"` // direction -> gate
}

// Validate satisfies storage.ValidatingSpec. Exit destinations are checked
// later by NewWorldState once every room is known.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Header == "" && r.FirstTimeMessage == "" {
		el.Add(fmt.Errorf("room needs a header or a first_time_message"))
	}

	for dir, dest := range r.Exits {
		if _, ok := lexicon.ResolveDirection(dir); !ok {
			el.Add(fmt.Errorf("exit %q: unknown direction", dir))
		}
		if dest == "" {
			el.Add(fmt.Errorf("exit %s: destination is required", dir))
		}
	}

	for dir, gate := range r.AccessPoints {
		if _, ok := r.Exits[dir]; !ok {
			el.Add(fmt.Errorf("access point %s: no exit in that direction", dir))
		}
		if gate.Id == "" {
			el.Add(fmt.Errorf("access point %s: id is required", dir))
		}
	}

	return el.Err()
}

// Gate returns the access point guarding direction, if any.
func (r *Room) Gate(direction string) (AccessPoint, bool) {
	gate, ok := r.AccessPoints[direction]
	return gate, ok
}

// OpenExits returns the directions that have an exit, in canonical order.
func (r *Room) OpenExits() []string {
	var dirs []string
	for _, d := range lexicon.Directions {
		if _, ok := r.Exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (r *Room) clone() *Room {
	c := *r
	c.Exits, c.AccessPoints = nil, nil
	if len(r.Exits) > 0 {
		c.Exits = make(map[string]string, len(r.Exits))
		for k, v := range r.Exits {
			c.Exits[k] = v
		}
	}
	if len(r.AccessPoints) > 0 {
		c.AccessPoints = make(map[string]AccessPoint, len(r.AccessPoints))
		for k, v := range r.AccessPoints {
			c.AccessPoints[k] = v
		}
	}
	return &c
}
