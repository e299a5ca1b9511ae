package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a standard deck.
const Size = 52

// ErrDeckExhausted is returned when a draw asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered run of distinct cards consumed from the front.
//
// A Deck is a value: Draw returns the remaining deck instead of mutating the
// receiver, so a round state holding a Deck can be copied freely.
type Deck struct {
	cards []Card
}

// Standard returns the 52 cards in construction order, unshuffled.
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// New creates a full deck shuffled with rng.
func New(rng *rand.Rand) Deck {
	cards := Standard()
	Shuffle(cards, rng)
	return Deck{cards: cards}
}

// FromCards builds a deck that deals exactly the given cards in order.
// Used to stack the deck in tests and replays.
func FromCards(cards []Card) Deck {
	return Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle performs an in-place Fisher-Yates shuffle. IntN draws without
// modulo bias.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw removes the first n cards and returns them with the remaining deck.
func (d Deck) Draw(n int) ([]Card, Deck, error) {
	if n < 0 {
		return nil, d, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(d.cards) {
		return nil, d, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, len(d.cards))
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	return drawn, Deck{cards: d.cards[n:]}, nil
}

// Remaining returns the number of cards left in the deck
func (d Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deal order.
func (d Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
