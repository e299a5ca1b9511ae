package evaluator

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
)

// HandRank is the category of a five-card hand. Its integer value is the
// hand's strength: 1 for High Card up to 10 for Royal Flush. The zero value
// marks an incomplete hand that cannot be compared yet.
type HandRank int

const (
	Incomplete HandRank = iota
	HighCard
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand rank
func (hr HandRank) String() string {
	switch hr {
	case Incomplete:
		return "Incomplete Hand"
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Result describes the best five-card hand found for a set of cards.
type Result struct {
	Rank         HandRank
	Description  string
	Cards        []deck.Card // the five cards, ordered for display
	WinningCards []deck.Card // the subset that makes the category
	HighCard     string      // tiebreak label, e.g. "Aces over Kings"
	Tiebreak     []deck.Rank // ranks compared in order within a category
}

// Strength returns the comparable category score (0 for an incomplete hand).
func (r Result) Strength() int {
	return int(r.Rank)
}

// IsComplete reports whether the result came from at least five cards.
func (r Result) IsComplete() bool {
	return r.Rank != Incomplete
}

// String returns a string representation of the hand
func (r Result) String() string {
	if !r.IsComplete() {
		return r.Description
	}
	return fmt.Sprintf("%s, %s [%s]", r.Description, r.HighCard, deck.FormatCards(r.Cards))
}

// Compare orders two results by category and then by tiebreak ranks.
// It returns 1 if a is stronger, -1 if b is stronger and 0 on a tie.
func Compare(a, b Result) int {
	if a.Rank != b.Rank {
		if a.Rank > b.Rank {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		}
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
	}
	return 0
}

// CompareStrength orders two results by category only.
func CompareStrength(a, b Result) int {
	switch {
	case a.Rank > b.Rank:
		return 1
	case a.Rank < b.Rank:
		return -1
	default:
		return 0
	}
}
