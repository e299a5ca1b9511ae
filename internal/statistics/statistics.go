// Package statistics summarises how a seat has fared over a session.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdem-engine/internal/game"
)

// bigPotBB is the size, in big blinds, from which a pot counts as big.
const bigPotBB = 50

// HandResult is the outcome of one hand for the tracked seat.
type HandResult struct {
	NetChips       int        // chips won or lost
	NetBB          float64    // NetChips in big blinds
	Won            bool       // received part of the pot
	WentToShowdown bool       // hand reached showdown
	FinalPotSize   int        // chips paid out
	FinalPotBB     float64    // FinalPotSize in big blinds
	StreetReached  game.Phase // furthest street dealt
}

// Statistics accumulates hand results.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	HandsWon      int
	TotalWinnings int // net chips over all hands

	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown (fold equity)
	ShowdownBB      float64 // BB from showdown (wins AND losses)
	NonShowdownBB   float64 // BB from fold equity (wins AND losses)
	AllBB           float64 // Total BB for sanity check

	StreetsReached map[game.Phase]int

	MaxPotChips int     // Largest pot observed (in chips)
	MaxPotBB    float64 // Largest pot observed (in bb)
	BigPots     int     // Pots >= 50bb (high action hands)
	BigPotsBB   float64 // BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the share of hands won, between 0 and 1.
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.HandsWon) / float64(s.Hands)
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)
	s.TotalWinnings += result.NetChips

	if result.Won {
		s.HandsWon++
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}

	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if s.StreetsReached == nil {
		s.StreetsReached = make(map[game.Phase]int)
	}
	s.StreetsReached[result.StreetReached]++

	potBB := result.FinalPotBB
	if result.FinalPotSize > s.MaxPotChips {
		s.MaxPotChips = result.FinalPotSize
		s.MaxPotBB = potBB
	}
	if potBB >= bigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands < 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if s.HandsWon != s.ShowdownWins+s.NonShowdownWins {
		return fmt.Errorf("hands won (%d) does not match showdown (%d) plus fold wins (%d)",
			s.HandsWon, s.ShowdownWins, s.NonShowdownWins)
	}
	if s.HandsWon > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", s.HandsWon, s.Hands)
	}
	return nil
}

// Merge folds other into s.
func (s *Statistics) Merge(other Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.HandsWon += other.HandsWon
	s.TotalWinnings += other.TotalWinnings
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for phase, n := range other.StreetsReached {
		if s.StreetsReached == nil {
			s.StreetsReached = make(map[game.Phase]int)
		}
		s.StreetsReached[phase] += n
	}
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
		s.MaxPotBB = other.MaxPotBB
	}
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}
