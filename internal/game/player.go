package game

// Player is the single player of a session.
type Player struct {
	Location  string   `json:"location"`
	Inventory []string `json:"inventory"`
}

// Carries reports whether id is in the inventory.
func (p *Player) Carries(id string) bool {
	return indexOf(p.Inventory, id) >= 0
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func without(s []string, v string) []string {
	var out []string
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
