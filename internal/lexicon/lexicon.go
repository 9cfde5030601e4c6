// Package lexicon holds the static verb and direction synonym tables used to
// normalize player input before it reaches the command parser.
package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
)

// Canonical directions.
const (
	North = "north"
	South = "south"
	East  = "east"
	West  = "west"
	Up    = "up"
	Down  = "down"
)

// Directions lists the canonical directions in display order.
var Directions = []string{North, South, East, West, Up, Down}

var directionAliases = map[string]string{
	"north":      North,
	"n":          North,
	"south":      South,
	"s":          South,
	"east":       East,
	"e":          East,
	"west":       West,
	"w":          West,
	"up":         Up,
	"u":          Up,
	"ascend":     Up,
	"upstairs":   Up,
	"climbup":    Up,
	"climb up":   Up,
	"down":       Down,
	"d":          Down,
	"descend":    Down,
	"downstairs": Down,
	"climbdown":  Down,
	"climb down": Down,
}

// Canonical verbs understood by the executor.
const (
	VerbLook      = "look"
	VerbExamine   = "examine"
	VerbTake      = "take"
	VerbDrop      = "drop"
	VerbPut       = "put"
	VerbOpen      = "open"
	VerbClose     = "close"
	VerbUse       = "use"
	VerbRead      = "read"
	VerbTalk      = "talk"
	VerbInventory = "inventory"
	VerbHelp      = "help"
	VerbGo        = "go"
	VerbUnlock    = "unlock"
)

var verbAliases = map[string]string{
	"grab":    VerbTake,
	"get":     VerbTake,
	"pickup":  VerbTake,
	"pick up": VerbTake,
	"inspect": VerbExamine,
	"check":   VerbExamine,
	"x":       VerbExamine,
	"speak":   VerbTalk,
	"chat":    VerbTalk,
	"i":       VerbInventory,
	"inv":     VerbInventory,
	"l":       VerbLook,
	"h":       VerbHelp,
	"?":       VerbHelp,
	"move":    VerbGo,
	"walk":    VerbGo,
	"shut":    VerbClose,
	"insert":  VerbPut,
	"place":   VerbPut,
	"discard": VerbDrop,
}

// Fold lowercases s using Unicode case folding and trims surrounding space.
func Fold(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}

// ResolveVerb maps a verb token to its canonical form. Unknown tokens are
// returned unchanged.
func ResolveVerb(token string) string {
	if v, ok := verbAliases[token]; ok {
		return v
	}
	return token
}

// IsVerbPhrase reports whether phrase (possibly two words, e.g. "pick up") is
// a known verb alias.
func IsVerbPhrase(phrase string) bool {
	_, ok := verbAliases[phrase]
	return ok
}

// ResolveDirection maps a direction token to its canonical form. The second
// return value is false when the token is not a direction.
func ResolveDirection(token string) (string, bool) {
	d, ok := directionAliases[Fold(token)]
	return d, ok
}
