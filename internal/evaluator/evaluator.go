// Package evaluator ranks poker hands.
//
// Evaluate classifies exactly five cards. BestHand searches every five-card
// subset of a player's hole cards plus the visible board (21 subsets once
// the river is out) and keeps the strongest.
package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
)

// HandSize is the number of cards in an evaluated hand.
const HandSize = 5

// ErrWrongCardCount is returned by Evaluate when not given exactly five cards.
var ErrWrongCardCount = errors.New("hand must contain exactly five cards")

// IncompleteResult is the sentinel returned when fewer than five cards are
// available.
var IncompleteResult = Result{
	Rank:        Incomplete,
	Description: "Incomplete hand",
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// Evaluate classifies exactly five cards.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) != HandSize {
		return Result{}, fmt.Errorf("%w: got %d", ErrWrongCardCount, len(cards))
	}
	return evaluate5(cards), nil
}

// MustEvaluate is Evaluate for callers that already guarantee five cards.
func MustEvaluate(cards []deck.Card) Result {
	r, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return r
}

// BestHand returns the strongest five-card hand that can be formed from the
// hole cards and community cards. With fewer than five cards in total it
// returns IncompleteResult.
func BestHand(hole, community []deck.Card) Result {
	all := make([]deck.Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)
	if len(all) < HandSize {
		return IncompleteResult
	}

	best := IncompleteResult
	combo := make([]deck.Card, HandSize)
	forEachCombination(len(all), HandSize, func(idx []int) {
		for i, j := range idx {
			combo[i] = all[j]
		}
		r := evaluate5(combo)
		if !best.IsComplete() || Compare(r, best) > 0 {
			best = r
		}
	})
	return best
}

// forEachCombination calls fn with every k-subset of [0,n) in lexicographic
// order. The index slice is reused between calls.
func forEachCombination(n, k int, fn func([]int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func evaluate5(in []deck.Card) Result {
	cards := slices.Clone(in)
	slices.SortStableFunc(cards, func(a, b deck.Card) int { return int(b.Rank) - int(a.Rank) })

	groups := groupRanks(cards)
	flush := isFlush(cards)
	straightHigh, straight := straightHigh(cards)

	if straight {
		// The wheel plays the ace low.
		if straightHigh == deck.Five {
			cards = append(cards[1:], cards[0])
		}
	}

	switch {
	case straight && flush:
		if straightHigh == deck.Ace {
			return Result{
				Rank:         RoyalFlush,
				Cards:        cards,
				WinningCards: cards,
				HighCard:     deck.Ace.Name(),
				Tiebreak:     []deck.Rank{deck.Ace},
			}.described()
		}
		return Result{
			Rank:         StraightFlush,
			Cards:        cards,
			WinningCards: cards,
			HighCard:     straightHigh.Name(),
			Tiebreak:     []deck.Rank{straightHigh},
		}.described()

	case groups[0].count == 4:
		quad := groups[0].rank
		return Result{
			Rank:         FourOfAKind,
			Cards:        cards,
			WinningCards: cardsOfRank(cards, quad),
			HighCard:     quad.Plural(),
			Tiebreak:     []deck.Rank{quad, groups[1].rank},
		}.described()

	case groups[0].count == 3 && groups[1].count == 2:
		trips, pair := groups[0].rank, groups[1].rank
		return Result{
			Rank:         FullHouse,
			Cards:        cards,
			WinningCards: append(cardsOfRank(cards, trips), cardsOfRank(cards, pair)...),
			HighCard:     fmt.Sprintf("%s over %s", trips.Plural(), pair.Plural()),
			Tiebreak:     []deck.Rank{trips, pair},
		}.described()

	case flush:
		return Result{
			Rank:         Flush,
			Cards:        cards,
			WinningCards: cards,
			HighCard:     cards[0].Rank.Name(),
			Tiebreak:     ranksOf(cards),
		}.described()

	case straight:
		return Result{
			Rank:         Straight,
			Cards:        cards,
			WinningCards: cards,
			HighCard:     straightHigh.Name(),
			Tiebreak:     []deck.Rank{straightHigh},
		}.described()

	case groups[0].count == 3:
		trips := groups[0].rank
		return Result{
			Rank:         ThreeOfAKind,
			Cards:        cards,
			WinningCards: cardsOfRank(cards, trips),
			HighCard:     trips.Plural(),
			Tiebreak:     []deck.Rank{trips, groups[1].rank, groups[2].rank},
		}.described()

	case groups[0].count == 2 && groups[1].count == 2:
		high, low := groups[0].rank, groups[1].rank
		return Result{
			Rank:         TwoPair,
			Cards:        cards,
			WinningCards: append(cardsOfRank(cards, high), cardsOfRank(cards, low)...),
			HighCard:     fmt.Sprintf("%s and %s", high.Plural(), low.Plural()),
			Tiebreak:     []deck.Rank{high, low, groups[2].rank},
		}.described()

	case groups[0].count == 2:
		pair := groups[0].rank
		return Result{
			Rank:         OnePair,
			Cards:        cards,
			WinningCards: cardsOfRank(cards, pair),
			HighCard:     pair.Plural(),
			Tiebreak:     []deck.Rank{pair, groups[1].rank, groups[2].rank, groups[3].rank},
		}.described()
	}

	return Result{
		Rank:         HighCard,
		Cards:        cards,
		WinningCards: cards[:1],
		HighCard:     cards[0].Rank.Name(),
		Tiebreak:     ranksOf(cards),
	}.described()
}

func (r Result) described() Result {
	r.Description = r.Rank.String()
	return r
}

// groupRanks returns rank groups ordered by count, then by rank, descending.
func groupRanks(cards []deck.Card) []rankGroup {
	counts := make(map[deck.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}
	slices.SortFunc(groups, func(a, b rankGroup) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return int(b.rank) - int(a.rank)
	})
	return groups
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightHigh expects cards sorted descending and reports the straight's
// top rank, with the wheel (A-5-4-3-2) reported as five-high.
func straightHigh(cards []deck.Card) (deck.Rank, bool) {
	consecutive := true
	for i := 1; i < len(cards); i++ {
		if cards[i-1].Rank-cards[i].Rank != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return cards[0].Rank, true
	}
	if cards[0].Rank == deck.Ace && cards[1].Rank == deck.Five && cards[2].Rank == deck.Four &&
		cards[3].Rank == deck.Three && cards[4].Rank == deck.Two {
		return deck.Five, true
	}
	return 0, false
}

func cardsOfRank(cards []deck.Card, r deck.Rank) []deck.Card {
	var out []deck.Card
	for _, c := range cards {
		if c.Rank == r {
			out = append(out, c)
		}
	}
	return out
}

func ranksOf(cards []deck.Card) []deck.Rank {
	out := make([]deck.Rank, len(cards))
	for i, c := range cards {
		out[i] = c.Rank
	}
	return out
}
