package game

import "errors"

var (
	ErrOutOfRange        = errors.New("coordinate out of range")
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidMove       = errors.New("invalid move")
	ErrMalformedNotation = errors.New("malformed move notation")
	ErrDuplicateCell     = errors.New("duplicate cell")
)
