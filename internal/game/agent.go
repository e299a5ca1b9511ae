package game

import "github.com/lox/holdem-engine/internal/deck"

// DecisionContext is everything a bot may look at when it is asked to act.
type DecisionContext struct {
	Seat         int
	HoleCards    []deck.Card
	Community    []deck.Card
	AmountToCall int
	Stack        int
	Pot          int
	Phase        Phase
}

// Decision is an agent's chosen action. Amount is only used for Raise and
// counts the additional chips committed by this action.
type Decision struct {
	Action    Action
	Amount    int
	Reasoning string
}

// Agent decides actions for a bot seat.
type Agent interface {
	Decide(ctx DecisionContext) Decision
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx DecisionContext) Decision

// Decide calls f.
func (f AgentFunc) Decide(ctx DecisionContext) Decision { return f(ctx) }

// AgentFactory returns the agent for a seat, or nil for a human seat.
type AgentFactory func(seat int, name string) Agent
