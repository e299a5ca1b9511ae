package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// Kind names a bot implementation.
type Kind string

const (
	KindPolicy Kind = "policy"
	KindCall   Kind = "call"
	KindFold   Kind = "fold"
	KindRandom Kind = "random"
)

// ParseKind parses a bot kind. The empty string is KindPolicy.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindPolicy, nil
	case KindPolicy, KindCall, KindFold, KindRandom:
		return k, nil
	}
	return "", fmt.Errorf("unknown bot kind %q", s)
}

// Spec describes one bot seat.
type Spec struct {
	Kind        Kind
	Personality Personality
}

// ParseSpec parses "kind" or "kind:personality", e.g. "policy:aggressive".
func ParseSpec(s string) (Spec, error) {
	kindStr, personalityStr, _ := strings.Cut(s, ":")
	kind, err := ParseKind(kindStr)
	if err != nil {
		return Spec{}, err
	}
	personality, err := ParsePersonality(personalityStr)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Kind: kind, Personality: personality}, nil
}

func (s Spec) String() string {
	if s.Kind == KindPolicy {
		return string(s.Kind) + ":" + s.Personality.String()
	}
	return string(s.Kind)
}

// New builds the agent for spec.
func New(spec Spec, rng *rand.Rand, logger *log.Logger) game.Agent {
	switch spec.Kind {
	case KindCall:
		return CallBot{}
	case KindFold:
		return FoldBot{}
	case KindRandom:
		return NewRandBot(rng)
	default:
		return NewPolicy(spec.Personality, rng, logger)
	}
}

// Factory returns a game.AgentFactory that seats humans in the first
// humans seats and bots everywhere else. Bot seats take their spec from
// specs in order, reusing the last one when specs runs short. Each bot gets
// its own generator derived from rng.
func Factory(humans int, specs []Spec, rng *rand.Rand, logger *log.Logger) game.AgentFactory {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(seat int, name string) game.Agent {
		if seat < humans {
			return nil
		}
		spec := Spec{Kind: KindPolicy}
		if n := len(specs); n > 0 {
			spec = specs[min(seat-humans, n-1)]
		}
		return New(spec, randutil.Derive(rng), logger.With("bot", name))
	}
}
