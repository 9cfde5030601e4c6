package commands

import (
	"fmt"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or unmet preconditions.
// Returning one from a verb discards every change the verb made.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// NewUserErrorf creates a user-facing error from a format string.
func NewUserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

const (
	msgNotUnderstood = "I do not understand that command."
	msgInternal      = "Something strange happens, and nothing changes."
)

func errNotSeen(phrase string) *UserError {
	return NewUserErrorf("You do not see a %s here.", phrase)
}

func errNoNoun(verb string) *UserError {
	return NewUserErrorf("What do you want to %s?", verb)
}
