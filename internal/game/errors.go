package game

import "errors"

var (
	ErrUnknownRoom = errors.New("unknown room")
	ErrUnknownItem = errors.New("unknown item")
)
