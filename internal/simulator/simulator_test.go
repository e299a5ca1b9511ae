package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

func testConfig() Config {
	cfg := game.DefaultConfig()
	cfg.PlayerCount = 4
	cfg.Seed = 1234
	return Config{
		Sessions: 6,
		Hands:    40,
		Workers:  3,
		Game:     cfg,
		Bots: []bot.Spec{
			{Kind: bot.KindPolicy, Personality: bot.Aggressive},
			{Kind: bot.KindPolicy, Personality: bot.Conservative},
			{Kind: bot.KindRandom},
			{Kind: bot.KindCall},
		},
	}
}

func TestRunConservesChipsAcrossSessions(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Sessions, cfg.Sessions)
	require.Len(t, report.Seats, 4)
	for _, s := range report.Sessions {
		total := 0
		for _, c := range s.FinalChips {
			total += c
		}
		assert.Equal(t, 4*cfg.Game.StartingChips, total)
		assert.LessOrEqual(t, s.HandsPlayed, cfg.Hands)
		assert.Positive(t, s.HandsPlayed)
	}

	winnings := 0
	for _, seat := range report.Seats {
		require.NoError(t, seat.Stats.Validate())
		winnings += seat.Stats.TotalWinnings
	}
	assert.Zero(t, winnings, "every chip won was lost by another seat")
	assert.Equal(t, bot.Aggressive, report.Seats[0].Bot.Personality)
	assert.Equal(t, "Bot 3", report.Seats[3].Name)
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()
	a, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)
	b, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	for i := range a.Sessions {
		assert.Equal(t, a.Sessions[i].Seed, b.Sessions[i].Seed)
		assert.Equal(t, a.Sessions[i].FinalChips, b.Sessions[i].FinalChips)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Game.PlayerCount = 1
	_, err := New(cfg).Run(context.Background())
	require.ErrorIs(t, err, game.ErrInvalidConfiguration)

	cfg = testConfig()
	cfg.Hands = 0
	_, err = New(cfg).Run(context.Background())
	require.ErrorIs(t, err, game.ErrInvalidConfiguration)
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testConfig()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
