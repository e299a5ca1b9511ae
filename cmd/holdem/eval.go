package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// EvalCmd prints the best five-card hand for a set of cards.
type EvalCmd struct {
	Hole  string `required:"" help:"Hole cards, e.g. AsKd"`
	Board string `help:"Community cards, e.g. AcKh2c"`
}

func (c *EvalCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *EvalCmd) run(w io.Writer) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("invalid hole cards: %w", err)
	}
	board, err := deck.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}
	if len(board) > 5 {
		return fmt.Errorf("board has at most 5 cards, got %d", len(board))
	}
	if err := checkDuplicates(append(hole, board...)); err != nil {
		return err
	}

	fmt.Fprintf(w, "Hole:  %s (%s, %s, top %.0f%% of starting hands)\n",
		deck.FormatCards(hole), deck.StartingHandKey(hole), deck.Categorize(hole),
		(1-deck.StartingHandPercentile(hole))*100)
	if len(board) > 0 {
		fmt.Fprintf(w, "Board: %s\n", deck.FormatCards(board))
	}

	result := evaluator.BestHand(hole, board)
	if !result.IsComplete() {
		fmt.Fprintf(w, "Hand:  incomplete, %d more cards needed\n", evaluator.HandSize-len(hole)-len(board))
		return nil
	}
	fmt.Fprintf(w, "Hand:  %s (%s)\n", result.Description, result.HighCard)
	fmt.Fprintf(w, "Cards: %s\n", deck.FormatCards(result.Cards))
	fmt.Fprintf(w, "Makes: %s\n", deck.FormatCards(result.WinningCards))
	return nil
}

func checkDuplicates(cards []deck.Card) error {
	seen := make(map[deck.Card]bool, len(cards))
	var errs []error
	for _, card := range cards {
		if seen[card] {
			errs = append(errs, fmt.Errorf("duplicate card %s", card))
		}
		seen[card] = true
	}
	return errors.Join(errs...)
}
