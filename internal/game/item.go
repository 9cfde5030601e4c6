package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// LocationInventory is the Item.Location value for carried items.
const LocationInventory = "inventory"

// Semantic tags recognized by the engine.
const (
	TagKey         = "key"
	TagAccessPoint = "access point"
	TagNPC         = "npc"
	TagReadable    = "readable"
	TagKeypad      = "keypad"
)

// Properties is the state bag of an item. Mobile defaults to true when unset.
type Properties struct {
	Mobile    *bool `json:"mobile,omitempty"`
	Container bool  `json:"container,omitempty"`
	Open      bool  `json:"open,omitempty"`
	Capacity  *int  `json:"capacity,omitempty"`
	Locked    bool  `json:"locked,omitempty"`
}

// Dialogue is the script of a character the player can talk to.
type Dialogue struct {
	Intro string `json:"intro"`           // said on the first conversation
	Final string `json:"final"`           // said when the conversation concludes
	Done  string `json:"done,omitempty"`  // said on every later attempt
	Gives string `json:"gives,omitempty"` // item handed to the player on conclusion
}

// Item is anything the player can refer to by name: objects, containers,
// doors, characters.
type Item struct {
	Handle      string            `json:"handle"`
	Name        string            `json:"name"`
	AltHandle   string            `json:"alt_handle,omitempty"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location"`
	Properties  Properties        `json:"properties"`
	Contains    []string          `json:"contains,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Responses   map[string]string `json:"responses,omitempty"`
	Code        *int              `json:"code,omitempty"`
	Unlocks     string            `json:"unlocks,omitempty"`
	Dialogue    *Dialogue         `json:"dialogue,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (it *Item) Validate() error {
	el := errors.NewErrorList()

	if it.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if it.Location == "" {
		el.Add(fmt.Errorf("item location is required"))
	}
	if len(it.Contains) > 0 && !it.Properties.Container {
		el.Add(fmt.Errorf("only containers may list contents"))
	}
	if it.Properties.Capacity != nil && *it.Properties.Capacity < 0 {
		el.Add(fmt.Errorf("capacity must not be negative"))
	}
	if it.HasTag(TagKeypad) && it.Code == nil {
		el.Add(fmt.Errorf("keypad requires a code"))
	}
	if it.Dialogue != nil && it.Dialogue.Intro == "" {
		el.Add(fmt.Errorf("dialogue intro is required"))
	}

	return el.Err()
}

// DisplayName is the name used when listing the item.
func (it *Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.Handle
}

// HasTag reports whether the item carries tag.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Response returns the canned text for verb, if the item defines one.
func (it *Item) Response(verb string) (string, bool) {
	text, ok := it.Responses[verb]
	return text, ok && text != ""
}

// Holds reports whether id is listed in the item's contents.
func (it *Item) Holds(id string) bool {
	for _, c := range it.Contains {
		if c == id {
			return true
		}
	}
	return false
}

func (it *Item) clone() *Item {
	c := *it
	if it.Properties.Mobile != nil {
		v := *it.Properties.Mobile
		c.Properties.Mobile = &v
	}
	if it.Properties.Capacity != nil {
		v := *it.Properties.Capacity
		c.Properties.Capacity = &v
	}
	if it.Code != nil {
		v := *it.Code
		c.Code = &v
	}
	if it.Dialogue != nil {
		d := *it.Dialogue
		c.Dialogue = &d
	}
	c.Contains = cloneStrings(it.Contains)
	c.Tags = cloneStrings(it.Tags)
	c.Responses = nil
	if len(it.Responses) > 0 {
		c.Responses = make(map[string]string, len(it.Responses))
		for k, v := range it.Responses {
			c.Responses[k] = v
		}
	}
	return &c
}

// cloneStrings copies s. Empty slices become nil so a world survives a JSON
// round trip unchanged.
func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
