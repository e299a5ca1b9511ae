package game

import "errors"

var (
	// ErrIllegalAction covers every action the engine refuses. The state is
	// left untouched; more specific errors below wrap it.
	ErrIllegalAction = errors.New("illegal action")

	ErrNotYourTurn   = illegal("not this seat's turn")
	ErrBotSeat       = illegal("seat is controlled by a bot")
	ErrHandOver      = illegal("no hand in progress")
	ErrCannotCheck   = illegal("cannot check facing a bet")
	ErrInvalidAmount = illegal("invalid raise amount")
	ErrStaleTurn     = illegal("turn token is stale")
	ErrUnknownAction = illegal("unknown action")

	// ErrInvalidConfiguration is returned when a session cannot be created.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotEnoughPlayers is returned when fewer than two seats hold chips.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")

	// ErrInvalidTransition is returned for a state/event pair the machine
	// does not define.
	ErrInvalidTransition = errors.New("invalid state transition")
)

type illegalError struct {
	msg string
}

func illegal(msg string) error { return &illegalError{msg: msg} }

func (e *illegalError) Error() string { return e.msg }

func (e *illegalError) Unwrap() error { return ErrIllegalAction }
