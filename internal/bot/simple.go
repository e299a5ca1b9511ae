package bot

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-engine/internal/game"
)

// CallBot checks when it can and calls everything else.
type CallBot struct{}

func (CallBot) Decide(ctx game.DecisionContext) game.Decision {
	if ctx.AmountToCall == 0 {
		return game.Decision{Action: game.Check, Reasoning: "call-bot checking"}
	}
	return game.Decision{Action: game.Call, Reasoning: "call-bot calling"}
}

// FoldBot checks when it can and folds to any bet.
type FoldBot struct{}

func (FoldBot) Decide(ctx game.DecisionContext) game.Decision {
	if ctx.AmountToCall == 0 {
		return game.Decision{Action: game.Check, Reasoning: "fold-bot checking"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}

// RandBot picks uniformly among the actions that make sense at the moment.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(ctx game.DecisionContext) game.Decision {
	actions := []game.Action{game.Check, game.Raise}
	if ctx.AmountToCall > 0 {
		actions = []game.Action{game.Fold, game.Call, game.Raise}
	}
	if ctx.Stack == 0 {
		actions = actions[:len(actions)-1]
	}
	action := actions[r.rng.IntN(len(actions))]

	amount := 0
	if action == game.Raise {
		amount = ctx.AmountToCall + 1 + r.rng.IntN(ctx.Stack)
		amount = min(amount, ctx.Stack)
	}
	return game.Decision{Action: action, Amount: amount, Reasoning: "rand-bot random action"}
}
