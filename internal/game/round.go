package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// Rules are the per-hand settings a round needs.
type Rules struct {
	SmallBlind int
	BigBlind   int
	// CompareKickers resolves showdowns with full kicker comparison instead
	// of category strength alone.
	CompareKickers bool
}

// Payout is the amount a winner received from the pot.
type Payout struct {
	PlayerID int
	Amount   int
}

// RoundState is the state of one hand. Transitions return modified copies.
type RoundState struct {
	HandNumber    int
	Seq           int // incremented on every applied action
	Status        GameState
	Phase         Phase
	Players       []Player
	Community     []deck.Card
	Pot           int
	CurrentBet    int
	CurrentPlayer int // seat to act, -1 when nobody can
	Showdown      bool
	Winners       []int // player IDs
	Payouts       []Payout
	Results       map[int]evaluator.Result // showdown hands by player ID
	EndedBy       EndReason
	Rules         Rules

	deck deck.Deck
}

// Clone returns a deep copy of the state.
func (s RoundState) Clone() RoundState {
	s.Players = clonePlayers(s.Players)
	s.Community = slices.Clone(s.Community)
	s.Winners = slices.Clone(s.Winners)
	s.Payouts = slices.Clone(s.Payouts)
	s.Results = maps.Clone(s.Results)
	return s
}

// AmountToCall returns what the seat owes to match the table bet.
func (s RoundState) AmountToCall(seat int) int {
	if seat < 0 || seat >= len(s.Players) {
		return 0
	}
	return max(0, s.CurrentBet-s.Players[seat].CurrentBet)
}

// InHandCount returns the number of players that have not folded.
func (s RoundState) InHandCount() int {
	n := 0
	for _, p := range s.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// TotalChips returns every stack plus the pot.
func (s RoundState) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}

// IsWinner reports whether the player ID is among the winners.
func (s RoundState) IsWinner(id int) bool {
	return slices.Contains(s.Winners, id)
}

// DeckRemaining returns how many cards are left undealt.
func (s RoundState) DeckRemaining() int {
	return s.deck.Remaining()
}

// DealNewHand starts a hand: deals two cards to every funded seat in seat
// order, posts the blinds and hands the action to the small blind.
// Seats without chips sit the hand out as folded players.
func DealNewHand(players []Player, rules Rules, d deck.Deck, handNumber int) (RoundState, error) {
	s := RoundState{
		HandNumber:    handNumber,
		Status:        Playing,
		Phase:         Preflop,
		Players:       clonePlayers(players),
		CurrentPlayer: -1,
		Rules:         rules,
		deck:          d,
	}

	var funded []int
	for i := range s.Players {
		p := &s.Players[i]
		p.ID = i
		p.Hand = nil
		p.CurrentBet = 0
		p.TotalBet = 0
		p.HasActed = false
		p.IsFolded = !p.IsActive()
		if p.IsActive() {
			funded = append(funded, i)
		}
	}
	if len(funded) < 2 {
		return RoundState{}, fmt.Errorf("%w: %d funded seats", ErrNotEnoughPlayers, len(funded))
	}

	for _, seat := range funded {
		cards, rest, err := s.deck.Draw(2)
		if err != nil {
			return RoundState{}, fmt.Errorf("dealing hole cards: %w", err)
		}
		s.Players[seat].Hand = cards
		s.deck = rest
	}

	s.post(funded[0], rules.SmallBlind)
	s.post(funded[1], rules.BigBlind)
	// A short stack may post less than the blind.
	s.CurrentBet = max(s.Players[funded[0]].CurrentBet, s.Players[funded[1]].CurrentBet)

	s.CurrentPlayer = s.nextToAct(funded[0])
	if s.bettingClosed() {
		return s.runOut()
	}
	return s, nil
}

// post moves a forced bet from a player's stack into the pot.
func (s *RoundState) post(seat, amount int) {
	p := &s.Players[seat]
	amount = min(amount, p.Chips)
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	s.Pot += amount
}

// ApplyAction applies a betting action for seat and returns the new state.
// On error the original state is returned unchanged.
func ApplyAction(s RoundState, seat int, action Action, amount int) (RoundState, error) {
	if s.Status != Playing || s.Showdown {
		return s, ErrHandOver
	}
	if seat != s.CurrentPlayer {
		return s, fmt.Errorf("%w: seat %d acted, seat %d is due", ErrNotYourTurn, seat, s.CurrentPlayer)
	}

	next := s.Clone()
	p := &next.Players[seat]
	toCall := max(0, next.CurrentBet-p.CurrentBet)

	switch action {
	case Fold:
		p.IsFolded = true

	case Check:
		if toCall > 0 {
			return s, fmt.Errorf("%w: %d to call", ErrCannotCheck, toCall)
		}

	case Call:
		next.commit(seat, min(toCall, p.Chips))

	case Raise:
		if amount <= 0 || amount > p.Chips {
			return s, fmt.Errorf("%w: %d with %d behind", ErrInvalidAmount, amount, p.Chips)
		}
		if p.CurrentBet+amount <= next.CurrentBet && amount < p.Chips {
			return s, fmt.Errorf("%w: raise of %d does not exceed the bet of %d", ErrInvalidAmount, amount, next.CurrentBet)
		}
		next.commit(seat, amount)
		if p.CurrentBet > next.CurrentBet {
			next.CurrentBet = p.CurrentBet
			for i := range next.Players {
				if i != seat {
					next.Players[i].HasActed = false
				}
			}
		}

	default:
		return s, fmt.Errorf("%w: %d", ErrUnknownAction, action)
	}

	p.HasActed = true
	next.Seq++
	return next.afterAction(seat)
}

func (s *RoundState) commit(seat, amount int) {
	p := &s.Players[seat]
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	s.Pot += amount
}

func (s RoundState) afterAction(seat int) (RoundState, error) {
	if s.InHandCount() < 2 {
		return s.awardToLastPlayer()
	}
	if s.IsStreetComplete() {
		return s.advance()
	}
	s.CurrentPlayer = s.nextToAct(seat + 1)
	return s, nil
}

// IsStreetComplete reports whether the current betting round is over:
// one player remains, or every player who can still bet has acted and
// matched the table bet.
func (s RoundState) IsStreetComplete() bool {
	if s.Status != Playing {
		return false
	}
	if s.InHandCount() < 2 {
		return true
	}
	for _, p := range s.Players {
		if !p.CanAct() {
			continue
		}
		if !p.HasActed || p.CurrentBet != s.CurrentBet {
			return false
		}
	}
	return true
}

// AdvanceIfComplete moves to the next street when the current one is
// complete. It reports whether a transition happened; calling it again on
// the returned state does nothing until the new street has been played.
func AdvanceIfComplete(s RoundState) (RoundState, bool, error) {
	if !s.IsStreetComplete() {
		return s, false, nil
	}
	if s.InHandCount() < 2 {
		next, err := s.Clone().awardToLastPlayer()
		return next, err == nil, err
	}
	next, err := s.Clone().advance()
	if err != nil {
		return s, false, err
	}
	return next, true, nil
}

// advance deals the next street, or settles the hand after the river.
// When no further betting is possible it keeps dealing to showdown.
func (s RoundState) advance() (RoundState, error) {
	step, err := nextStreet(s.Phase)
	if err != nil {
		return s, err
	}
	if step.next == Showdown {
		return s.settle()
	}

	cards, rest, err := s.deck.Draw(step.cards)
	if err != nil {
		return s, fmt.Errorf("dealing %s: %w", step.next, err)
	}
	s.deck = rest
	s.Community = append(slices.Clone(s.Community), cards...)
	s.Phase = step.next
	s.CurrentBet = 0
	for i := range s.Players {
		s.Players[i].CurrentBet = 0
		s.Players[i].HasActed = false
	}
	s.CurrentPlayer = s.nextToAct(0)

	if s.bettingClosed() {
		return s.advance()
	}
	return s, nil
}

// runOut deals the remaining streets without betting.
func (s RoundState) runOut() (RoundState, error) {
	s.CurrentPlayer = -1
	return s.advance()
}

// bettingClosed reports whether nobody can make a meaningful action: at most
// one player can still bet and that player has nothing left to call.
func (s RoundState) bettingClosed() bool {
	canAct := 0
	for _, p := range s.Players {
		if p.CanAct() {
			canAct++
			if p.CurrentBet < s.CurrentBet {
				return false
			}
		}
	}
	return canAct <= 1
}

// nextToAct finds the first seat at or after from (wrapping) that can bet.
func (s RoundState) nextToAct(from int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if s.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (s RoundState) awardToLastPlayer() (RoundState, error) {
	if err := checkLifecycle(s.Status, Finished); err != nil {
		return s, err
	}
	for i := range s.Players {
		p := &s.Players[i]
		if p.InHand() {
			p.Chips += s.Pot
			s.Winners = []int{p.ID}
			s.Payouts = []Payout{{PlayerID: p.ID, Amount: s.Pot}}
			break
		}
	}
	s.Pot = 0
	s.Status = Finished
	s.EndedBy = EndedByFold
	s.CurrentPlayer = -1
	return s, nil
}
