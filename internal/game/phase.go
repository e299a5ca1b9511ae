package game

import (
	"fmt"
	"strings"
)

// Phase is the street a hand is on.
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// GameState is the lifecycle of a hand at the table.
type GameState int

const (
	Waiting GameState = iota
	Playing
	Finished
)

func (s GameState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Action is a betting decision.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name as typed by a user.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "check", "k", "x":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "raise", "r", "bet", "b":
		return Raise, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// EndReason records how a finished hand was decided.
type EndReason int

const (
	NotEnded EndReason = iota
	EndedByFold
	EndedByShowdown
)

func (r EndReason) String() string {
	switch r {
	case EndedByFold:
		return "fold"
	case EndedByShowdown:
		return "showdown"
	default:
		return "none"
	}
}

type streetStep struct {
	next  Phase
	cards int
}

// streets is the phase transition table while a hand is playing.
var streets = map[Phase]streetStep{
	Preflop: {next: Flop, cards: 3},
	Flop:    {next: Turn, cards: 1},
	Turn:    {next: River, cards: 1},
	River:   {next: Showdown, cards: 0},
}

// lifecycle lists the allowed GameState transitions.
var lifecycle = map[GameState][]GameState{
	Waiting:  {Playing},
	Playing:  {Finished},
	Finished: {Playing},
}

func nextStreet(p Phase) (streetStep, error) {
	step, ok := streets[p]
	if !ok {
		return streetStep{}, fmt.Errorf("%w: no street after %s", ErrInvalidTransition, p)
	}
	return step, nil
}

func checkLifecycle(from, to GameState) error {
	for _, allowed := range lifecycle[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
