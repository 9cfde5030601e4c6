package game

// ModeKind is the top-level interaction mode. Anything other than
// ModeNormal redirects the next raw input away from the command parser.
type ModeKind string

const (
	ModeNormal ModeKind = ""
	ModeKeypad ModeKind = "keypad"
)

// Mode is the current interaction mode and the item it concerns.
type Mode struct {
	Kind   ModeKind `json:"kind,omitempty"`
	Target string   `json:"target,omitempty"`
}

// Armed reports whether a modal interaction is waiting for input.
func (m Mode) Armed() bool {
	return m.Kind != ModeNormal
}

// DialogueState is a character's conversation progress.
type DialogueState string

const (
	DialogueIdle     DialogueState = ""
	DialogueIntro    DialogueState = "intro"
	DialogueTerminal DialogueState = "terminal"
)
