package game

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/evaluator"
)

// settle evaluates every remaining hand and pays the pot to the best of
// them. The pot is split by floor division; odd chips go to the winner in
// the earliest seat.
func (s RoundState) settle() (RoundState, error) {
	if err := checkLifecycle(s.Status, Finished); err != nil {
		return s, err
	}

	s.Phase = Showdown
	s.Showdown = true
	s.CurrentPlayer = -1
	s.Results = make(map[int]evaluator.Result)

	compare := evaluator.CompareStrength
	if s.Rules.CompareKickers {
		compare = evaluator.Compare
	}

	var best evaluator.Result
	var winners []int
	for _, p := range s.Players {
		if !p.InHand() {
			continue
		}
		result := evaluator.BestHand(p.Hand, s.Community)
		s.Results[p.ID] = result
		switch c := compare(result, best); {
		case len(winners) == 0 || c > 0:
			best = result
			winners = []int{p.ID}
		case c == 0:
			winners = append(winners, p.ID)
		}
	}
	if len(winners) == 0 {
		return s, fmt.Errorf("%w: showdown with no players", ErrInvalidTransition)
	}

	share := s.Pot / len(winners)
	remainder := s.Pot % len(winners)
	s.Payouts = make([]Payout, 0, len(winners))
	for i, id := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		s.Players[id].Chips += amount
		s.Payouts = append(s.Payouts, Payout{PlayerID: id, Amount: amount})
	}

	s.Winners = winners
	s.Pot = 0
	s.Status = Finished
	s.EndedBy = EndedByShowdown
	return s, nil
}
