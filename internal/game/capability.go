package game

// Capability is a behavior an item supports. The executor dispatches on
// capabilities instead of reading raw properties and tags.
type Capability uint16

const (
	CapContainer   Capability = 1 << iota // holds other items, can be opened and closed
	CapReadable                           // has text to read
	CapLockable                           // has a locked state
	CapFixed                              // cannot be taken
	CapKey                                // carries a code that opens access points
	CapAccessPoint                        // unlocked by a key with the same code
	CapKeypad                             // accepts a typed code
	CapTalker                             // can be talked to
)

// Capabilities derives the capability set from the item's data.
func (it *Item) Capabilities() Capability {
	var c Capability
	if it.Properties.Container {
		c |= CapContainer
	}
	if _, ok := it.Response("read"); ok || it.HasTag(TagReadable) {
		c |= CapReadable
	}
	if it.Properties.Locked || it.HasTag(TagAccessPoint) {
		c |= CapLockable
	}
	if it.Properties.Mobile != nil && !*it.Properties.Mobile {
		c |= CapFixed
	}
	if it.HasTag(TagKey) && it.Code != nil {
		c |= CapKey
	}
	if it.HasTag(TagAccessPoint) {
		c |= CapAccessPoint
	}
	if it.HasTag(TagKeypad) && it.Code != nil {
		c |= CapKeypad
	}
	if it.Dialogue != nil || it.HasTag(TagNPC) {
		c |= CapTalker
	}
	return c
}

// Can reports whether the item has every capability in c.
func (it *Item) Can(c Capability) bool {
	return it.Capabilities()&c == c
}

// IsOpen reports whether the item is an open container.
func (it *Item) IsOpen() bool {
	return it.Properties.Container && it.Properties.Open
}

// IsLocked reports whether the item is currently locked.
func (it *Item) IsLocked() bool {
	return it.Properties.Locked
}

// IsFull reports whether a container has reached its capacity.
func (it *Item) IsFull() bool {
	if it.Properties.Capacity == nil {
		return false
	}
	return len(it.Contains) >= *it.Properties.Capacity
}

// KeyCode returns the item's code, if it has one.
func (it *Item) KeyCode() (int, bool) {
	if it.Code == nil {
		return 0, false
	}
	return *it.Code, true
}

// Fits reports whether key opens access point ap.
func Fits(key, ap *Item) bool {
	if !key.Can(CapKey) || !ap.Can(CapAccessPoint) {
		return false
	}
	kc, _ := key.KeyCode()
	ac, ok := ap.KeyCode()
	return ok && kc == ac
}
