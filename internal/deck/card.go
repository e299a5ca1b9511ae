package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck construction order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single-letter notation used by ParseCard.
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Values run from 2 to 14 so that an ace
// compares high; the wheel straight treats it as low separately.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return fmt.Sprintf("%d", int(r))
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

var rankNames = map[Rank][2]string{
	Two:   {"Two", "Twos"},
	Three: {"Three", "Threes"},
	Four:  {"Four", "Fours"},
	Five:  {"Five", "Fives"},
	Six:   {"Six", "Sixes"},
	Seven: {"Seven", "Sevens"},
	Eight: {"Eight", "Eights"},
	Nine:  {"Nine", "Nines"},
	Ten:   {"Ten", "Tens"},
	Jack:  {"Jack", "Jacks"},
	Queen: {"Queen", "Queens"},
	King:  {"King", "Kings"},
	Ace:   {"Ace", "Aces"},
}

// Name returns the English name of the rank ("King").
func (r Rank) Name() string {
	if n, ok := rankNames[r]; ok {
		return n[0]
	}
	return "Unknown"
}

// Plural returns the plural name of the rank ("Kings").
func (r Rank) Plural() string {
	if n, ok := rankNames[r]; ok {
		return n[1]
	}
	return "Unknown"
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Notation returns the two-character ASCII form of the card ("As").
func (c Card) Notation() string {
	return c.Rank.String() + c.Suit.Letter()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the numeric value of the card for comparison (A=14).
func (c Card) Value() int {
	return int(c.Rank)
}

// ParseCard parses a card in "As", "Td" or "10h" notation. Ranks and suits
// are case-insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankPart[0] - '0')
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	var suit Suit
	switch strings.ToLower(suitPart) {
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	case "s":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a run of concatenated cards such as "AsKsQsJsTs".
// Whitespace between cards is ignored and "10" is accepted for tens.
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	cards := []Card{}
	for len(s) > 0 {
		width := 2
		if strings.HasPrefix(s, "10") {
			width = 3
		}
		if len(s) < width {
			return nil, fmt.Errorf("trailing input %q", s)
		}
		card, err := ParseCard(s[:width])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
		s = s[width:]
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards renders cards separated by spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
