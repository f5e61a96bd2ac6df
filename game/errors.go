package game

import "errors"

var (
	ErrColumnRange = errors.New("column out of range")
	ErrOwnColumn   = errors.New("column already owned by mover")
)
