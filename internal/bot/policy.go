// Package bot implements the computer players.
package bot

import (
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
)

// Tier thresholds on adjusted potential. A value on a boundary belongs to
// the higher tier.
const (
	strongTier   = 0.8
	goodTier     = 0.6
	marginalTier = 0.4

	// epsilon absorbs float error such as 0.6*1.3 landing just under 0.78.
	epsilon = 1e-9
)

// Policy is the heuristic decision maker used for bot seats.
type Policy struct {
	personality Personality
	rng         *rand.Rand
	logger      *log.Logger
}

// NewPolicy creates a policy. rng drives bluffs and mixed strategies; a
// nil logger discards output.
func NewPolicy(personality Personality, rng *rand.Rand, logger *log.Logger) *Policy {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Policy{
		personality: personality,
		rng:         rng,
		logger:      logger.WithPrefix("bot"),
	}
}

// Personality returns the policy's personality.
func (p *Policy) Personality() Personality {
	return p.personality
}

// Decide implements game.Agent.
func (p *Policy) Decide(ctx game.DecisionContext) game.Decision {
	thinking := &ThinkingContext{}
	d := p.decide(ctx, thinking)
	d.Reasoning = thinking.GetThoughts()

	p.logger.Debug("Bot decision made",
		"seat", ctx.Seat,
		"phase", ctx.Phase,
		"hole", deck.FormatCards(ctx.HoleCards),
		"to_call", ctx.AmountToCall,
		"stack", ctx.Stack,
		"pot", ctx.Pot,
		"decision", d.Action,
		"amount", d.Amount)
	return d
}

func (p *Policy) decide(ctx game.DecisionContext, thinking *ThinkingContext) game.Decision {
	toCall := ctx.AmountToCall

	if ctx.Stack <= 0 {
		thinking.AddThought("No chips behind")
		if toCall == 0 {
			return game.Decision{Action: game.Check}
		}
		return game.Decision{Action: game.Fold}
	}

	potential := Potential(ctx.HoleCards, ctx.Community, ctx.Phase)
	adjusted := potential * p.personality.Multiplier()
	if ctx.Phase == game.Preflop {
		thinking.AddThought(fmt.Sprintf("I have %s, %s (top %.0f%% hand)",
			deck.StartingHandKey(ctx.HoleCards), strings.ToLower(string(deck.Categorize(ctx.HoleCards))),
			(1-deck.StartingHandPercentile(ctx.HoleCards))*100))
	} else {
		thinking.AddThought(fmt.Sprintf("Board %s gives me %s",
			deck.FormatCards(ctx.Community), evaluator.BestHand(ctx.HoleCards, ctx.Community).Description))
	}
	thinking.AddThought(fmt.Sprintf("Potential %.2f, %s read %.2f", potential, p.personality, adjusted))

	potOdds := 0.0
	stackRatio := float64(toCall) / float64(ctx.Stack)
	if toCall > 0 {
		potOdds = float64(toCall) / float64(ctx.Pot+toCall)
		thinking.AddThought(fmt.Sprintf("Facing %d: pot odds %.2f, %.0f%% of my stack", toCall, potOdds, stackRatio*100))
	}

	raise := func(amount float64, why string) game.Decision {
		thinking.AddThought(why)
		return game.Decision{Action: game.Raise, Amount: clampRaise(amount, ctx.Stack)}
	}
	check := func() game.Decision {
		thinking.AddThought("Checking")
		return game.Decision{Action: game.Check}
	}
	call := func(why string) game.Decision {
		thinking.AddThought(why)
		return game.Decision{Action: game.Call}
	}
	fold := func() game.Decision {
		thinking.AddThought("Not worth it, folding")
		return game.Decision{Action: game.Fold}
	}

	switch {
	case adjusted+epsilon >= strongTier:
		switch {
		case toCall == 0:
			return raise(math.Max(float64(ctx.Pot)*0.5, 50), "Strong hand, betting for value")
		case stackRatio < 0.3:
			return raise(float64(toCall)*2, "Strong hand, raising")
		}
		return call("Strong hand but the price is steep, calling")

	case adjusted+epsilon >= goodTier:
		switch {
		case toCall == 0:
			return check()
		case stackRatio < 0.15:
			return call("Good hand at a fair price")
		case stackRatio < 0.25 && p.rng.Float64() < 0.3:
			return raise(float64(toCall)*1.5, "Good hand, mixing in a raise")
		}
		return call("Good hand, calling")

	case adjusted+epsilon >= marginalTier:
		switch {
		case toCall == 0:
			return check()
		case stackRatio < 0.1 && potOdds < 0.3:
			return call("Marginal hand with the right odds")
		case p.shouldBluff(ctx.Phase):
			return raise(float64(ctx.Pot)*0.4, "Representing strength")
		}
		return fold()
	}

	switch {
	case toCall == 0:
		return check()
	case p.shouldBluff(ctx.Phase) && stackRatio < 0.05:
		return raise(float64(ctx.Pot)*0.6, "Weak hand, trying a bluff")
	case stackRatio < 0.05 && p.rng.Float64() < 0.1:
		return call("Cheap enough for a desperate call")
	}
	return fold()
}

func (p *Policy) shouldBluff(phase game.Phase) bool {
	chance := p.personality.BluffChance()
	if chance == 0 || phase == game.Preflop {
		return false
	}
	return p.rng.Float64() < chance
}

// clampRaise floors amount to whole chips within [1, stack].
func clampRaise(amount float64, stack int) int {
	return min(max(int(amount), 1), stack)
}

// Potential scores a hand between 0 and 1. Preflop it uses hole-card
// heuristics; afterwards the evaluated category over the visible board.
func Potential(hole, community []deck.Card, phase game.Phase) float64 {
	if phase != game.Preflop && len(community) > 0 {
		return float64(evaluator.BestHand(hole, community).Strength()) / 10
	}
	if len(hole) != 2 {
		return 0
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	pair := hi == lo
	high := lo >= deck.Ten
	suited := hole[0].Suit == hole[1].Suit

	switch {
	case pair && hi >= deck.Jack:
		return 0.8
	case pair:
		return 0.6
	case high && suited:
		return 0.7
	case high:
		return 0.5
	case suited:
		return 0.4
	default:
		return 0.2
	}
}
