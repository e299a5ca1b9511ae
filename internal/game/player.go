package game

import (
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
)

// Player is a seat at the table. Table owns the persistent copy; round
// transitions work on their own copies.
type Player struct {
	ID         int
	Name       string
	Chips      int
	Hand       []deck.Card
	CurrentBet int // contributed this street
	TotalBet   int // contributed this hand
	IsBot      bool
	IsFolded   bool
	HasActed   bool // acted since the last bet or street change
}

// IsActive returns true if the player still has chips behind.
func (p Player) IsActive() bool {
	return p.Chips > 0
}

// InHand returns true if the player has not folded.
func (p Player) InHand() bool {
	return !p.IsFolded
}

// CanAct returns true if the player is in the hand and can still bet.
func (p Player) CanAct() bool {
	return !p.IsFolded && p.Chips > 0
}

// IsAllIn returns true if the player is in the hand with nothing behind.
func (p Player) IsAllIn() bool {
	return !p.IsFolded && p.Chips == 0 && p.TotalBet > 0
}

func (p Player) clone() Player {
	p.Hand = slices.Clone(p.Hand)
	return p
}

func clonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.clone()
	}
	return out
}
