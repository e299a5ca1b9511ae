package bot

import (
	"fmt"
	"strings"
)

// Personality scales how a Policy values its hand and how often it bluffs.
type Personality int

const (
	Balanced Personality = iota
	Aggressive
	Conservative
)

func (p Personality) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case Conservative:
		return "conservative"
	default:
		return "balanced"
	}
}

// ParsePersonality parses a personality name. The empty string is Balanced.
func ParsePersonality(s string) (Personality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced":
		return Balanced, nil
	case "aggressive":
		return Aggressive, nil
	case "conservative":
		return Conservative, nil
	}
	return Balanced, fmt.Errorf("unknown personality %q", s)
}

// Multiplier is applied to the raw hand potential.
func (p Personality) Multiplier() float64 {
	switch p {
	case Aggressive:
		return 1.3
	case Conservative:
		return 0.7
	default:
		return 1.0
	}
}

// BluffChance is the probability of bluffing on a postflop street.
func (p Personality) BluffChance() float64 {
	switch p {
	case Aggressive:
		return 0.15
	case Conservative:
		return 0
	default:
		return 0.08
	}
}
