package party

import "errors"

var (
	ErrPartyNotFound  = errors.New("party not found")
	ErrTooManyParties = errors.New("too many parties")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game over")
	ErrOutsideBoard   = errors.New("pointer outside board")
	ErrIllegalCapture = errors.New("illegal capture")
	ErrBadPlayer      = errors.New("unknown player")
)
