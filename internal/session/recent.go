package session

import "slices"

const recentLimit = 5

// Recent remembers the last few distinct commands, most recent first.
type Recent struct {
	cmds []string
}

// Add records cmd, moving it to the front if it was already present.
func (r *Recent) Add(cmd string) {
	if cmd == "" {
		return
	}
	if i := slices.Index(r.cmds, cmd); i >= 0 {
		r.cmds = slices.Delete(r.cmds, i, i+1)
	}
	r.cmds = slices.Insert(r.cmds, 0, cmd)
	if len(r.cmds) > recentLimit {
		r.cmds = r.cmds[:recentLimit]
	}
}

func (r *Recent) List() []string {
	return slices.Clone(r.cmds)
}
