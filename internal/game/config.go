package game

import (
	"fmt"
	"strconv"
)

const (
	MinPlayers = 2
	MaxPlayers = 8

	DefaultPlayerCount   = 2
	DefaultStartingChips = 1000
	DefaultSmallBlind    = 5
	DefaultBigBlind      = 10
)

// Config describes a session.
type Config struct {
	PlayerCount   int
	StartingChips int
	SmallBlind    int
	BigBlind      int
	// PlayerNames is padded with default names when shorter than PlayerCount.
	PlayerNames    []string
	CompareKickers bool
	// Seed makes every shuffle and bot decision reproducible. Zero seeds from
	// the clock.
	Seed int64
}

// DefaultConfig returns a heads-up session with the default stakes.
func DefaultConfig() Config {
	return Config{
		PlayerCount:   DefaultPlayerCount,
		StartingChips: DefaultStartingChips,
		SmallBlind:    DefaultSmallBlind,
		BigBlind:      DefaultBigBlind,
	}
}

// Validate checks the config and returns an error wrapping
// ErrInvalidConfiguration on the first problem found.
func (c Config) Validate() error {
	switch {
	case c.PlayerCount < MinPlayers || c.PlayerCount > MaxPlayers:
		return fmt.Errorf("%w: player count %d outside [%d,%d]", ErrInvalidConfiguration, c.PlayerCount, MinPlayers, MaxPlayers)
	case c.StartingChips <= 0:
		return fmt.Errorf("%w: starting chips must be positive, got %d", ErrInvalidConfiguration, c.StartingChips)
	case c.SmallBlind <= 0:
		return fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidConfiguration, c.SmallBlind)
	case c.BigBlind < c.SmallBlind:
		return fmt.Errorf("%w: big blind %d below small blind %d", ErrInvalidConfiguration, c.BigBlind, c.SmallBlind)
	case len(c.PlayerNames) > c.PlayerCount:
		return fmt.Errorf("%w: %d names for %d players", ErrInvalidConfiguration, len(c.PlayerNames), c.PlayerCount)
	}
	return nil
}

// Names returns one name per seat. Seat 0 defaults to "You", the first bot
// to "Bot" and later bots to "Bot 2", "Bot 3" and so on.
func (c Config) Names() []string {
	names := make([]string, c.PlayerCount)
	for i := range names {
		if i < len(c.PlayerNames) && c.PlayerNames[i] != "" {
			names[i] = c.PlayerNames[i]
			continue
		}
		switch i {
		case 0:
			names[i] = "You"
		case 1:
			names[i] = "Bot"
		default:
			names[i] = "Bot " + strconv.Itoa(i)
		}
	}
	return names
}

// Rules returns the per-hand rules for this config.
func (c Config) Rules() Rules {
	return Rules{
		SmallBlind:     c.SmallBlind,
		BigBlind:       c.BigBlind,
		CompareKickers: c.CompareKickers,
	}
}
