package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// Variant is the PHH code for no-limit Texas Hold'em.
const Variant = "NT"

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSections writes hands as a PHHS file: one numbered table per hand.
func EncodeSections(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return err
		}
	}
	return nil
}

// FormatAction renders a betting action for player index pos. For raises,
// streetTotal is the player's whole contribution on the street.
func FormatAction(pos int, action game.Action, streetTotal int) string {
	player := fmt.Sprintf("p%d", pos+1)
	switch action {
	case game.Fold:
		return player + " f"
	case game.Check, game.Call:
		return player + " cc"
	case game.Raise:
		return fmt.Sprintf("%s cbr %d", player, streetTotal)
	default:
		return fmt.Sprintf("# %s %s %d", player, action, streetTotal)
	}
}

// Cards renders cards in PHH notation, e.g. "AhTd".
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Notation())
	}
	return b.String()
}
