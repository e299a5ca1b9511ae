package evaluator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		rank     HandRank
		strength int
		highCard string
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush, 10, "Ace"},
		{"four of a kind", "9d9c9h9s2c", FourOfAKind, 8, "Nines"},
		{"full house", "5s5h5d2c2s", FullHouse, 7, "Fives over Twos"},
		{"steel wheel is a straight flush", "Ac5c4c3c2c", StraightFlush, 9, "Five"},
		{"high card", "2s7d9cJhKs", HighCard, 1, "King"},
		{"straight flush", "9h8h7h6h5h", StraightFlush, 9, "Nine"},
		{"flush", "Ad9d7d4d2d", Flush, 6, "Ace"},
		{"broadway straight", "AhKdQcJsTs", Straight, 5, "Ace"},
		{"wheel straight", "Ah5d4c3s2s", Straight, 5, "Five"},
		{"three of a kind", "7h7d7cKs2s", ThreeOfAKind, 4, "Sevens"},
		{"two pair", "AhAdKcKs2s", TwoPair, 3, "Aces and Kings"},
		{"one pair", "QhQd9c5s2s", OnePair, 2, "Queens"},
		{"ace-high wraparound is not a straight", "KhAd2c3s4s", HighCard, 1, "Ace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.rank, r.Rank)
			assert.Equal(t, tt.strength, r.Strength())
			assert.Equal(t, tt.rank.String(), r.Description)
			assert.Equal(t, tt.highCard, r.HighCard)
			assert.Len(t, r.Cards, HandSize)
		})
	}
}

func TestEvaluateWinningCards(t *testing.T) {
	t.Parallel()

	r := MustEvaluate(deck.MustParseCards("9d9c9h9s2c"))
	assert.Len(t, r.WinningCards, 4)
	for _, c := range r.WinningCards {
		assert.Equal(t, deck.Nine, c.Rank)
	}

	r = MustEvaluate(deck.MustParseCards("QhQd9c5s2s"))
	assert.Equal(t, deck.MustParseCards("QhQd"), r.WinningCards)

	r = MustEvaluate(deck.MustParseCards("2s7d9cJhKs"))
	assert.Equal(t, deck.MustParseCards("Ks"), r.WinningCards)

	r = MustEvaluate(deck.MustParseCards("Ac5c4c3c2c"))
	assert.Equal(t, deck.MustParseCards("5c4c3c2cAc"), r.Cards, "wheel is ordered with the ace low")
}

func TestEvaluateRejectsWrongCount(t *testing.T) {
	t.Parallel()
	_, err := Evaluate(deck.MustParseCards("AsKsQsJs"))
	assert.True(t, errors.Is(err, ErrWrongCardCount))
	_, err = Evaluate(deck.MustParseCards("AsKsQsJsTs9s"))
	assert.True(t, errors.Is(err, ErrWrongCardCount))
}

func TestBestHandSearchesAllSubsets(t *testing.T) {
	t.Parallel()
	hole := deck.MustParseCards("AsAd")
	board := deck.MustParseCards("AcKdKh2c3s")

	r := BestHand(hole, board)
	assert.Equal(t, FullHouse, r.Rank)
	assert.Equal(t, 7, r.Strength())
	assert.Equal(t, "Aces over Kings", r.HighCard)
}

func TestBestHandPrefersHigherTiebreakWithinCategory(t *testing.T) {
	t.Parallel()
	// Both 9-high and T-high straights are available; the higher one wins.
	r := BestHand(deck.MustParseCards("Th2c"), deck.MustParseCards("9s8d7h6c3d"))
	assert.Equal(t, Straight, r.Rank)
	assert.Equal(t, "Ten", r.HighCard)

	// A flush hidden among seven cards.
	r = BestHand(deck.MustParseCards("AhKh"), deck.MustParseCards("2h7h9hQsQd"))
	assert.Equal(t, Flush, r.Rank)
}

func TestBestHandIncomplete(t *testing.T) {
	t.Parallel()
	r := BestHand(deck.MustParseCards("AsAd"), nil)
	assert.Equal(t, Incomplete, r.Rank)
	assert.Equal(t, 0, r.Strength())
	assert.False(t, r.IsComplete())

	r = BestHand(deck.MustParseCards("AsAd"), deck.MustParseCards("KsQs"))
	assert.Equal(t, 0, r.Strength())
}

func TestBestHandOnFlop(t *testing.T) {
	t.Parallel()
	r := BestHand(deck.MustParseCards("JhJd"), deck.MustParseCards("Js4c9d"))
	assert.Equal(t, ThreeOfAKind, r.Rank)
}

func TestCompare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"category beats category", "2h2d5c7s9s", "AhKdQc9s7s", 1},
		{"higher pair wins", "KhKd5c7s9s", "QhQdAc7s9s", 1},
		{"kicker decides pair", "KhKdAc7s9s", "KcKsQc7h9h", 1},
		{"wheel loses to six-high straight", "Ah5d4c3s2s", "6h5d4c3s2s", -1},
		{"identical ranks tie", "AhKdQcJs9s", "AsKcQdJh9h", 0},
		{"second pair decides two pair", "AhAdKcKs2s", "AcAsQcQs3s", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := MustEvaluate(deck.MustParseCards(tt.a))
			b := MustEvaluate(deck.MustParseCards(tt.b))
			assert.Equal(t, tt.want, Compare(a, b))
			assert.Equal(t, -tt.want, Compare(b, a))
		})
	}
}

func TestCompareStrengthIgnoresKickers(t *testing.T) {
	t.Parallel()
	a := MustEvaluate(deck.MustParseCards("AhAd5c7s9s"))
	b := MustEvaluate(deck.MustParseCards("2h2d5d7c9c"))
	assert.Equal(t, 0, CompareStrength(a, b))
	assert.Equal(t, 1, Compare(a, b))
}

func TestForEachCombinationCount(t *testing.T) {
	t.Parallel()
	n := 0
	forEachCombination(7, 5, func([]int) { n++ })
	assert.Equal(t, 21, n)

	n = 0
	forEachCombination(5, 5, func([]int) { n++ })
	assert.Equal(t, 1, n)
}
