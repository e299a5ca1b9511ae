package statistics

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

func TestTrackerFollowsSession(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	tracker := NewTracker(0, game.DefaultBigBlind, clock)

	cfg := game.DefaultConfig()
	cfg.PlayerCount = 3
	cfg.Seed = 99
	table, err := game.NewTable(cfg, game.WithAgents(func(seat int, _ string) game.Agent {
		if seat == 2 {
			return bot.FoldBot{}
		}
		return bot.CallBot{}
	}))
	require.NoError(t, err)
	table.Subscribe(tracker)

	const hands = 30
	played := 0
	for i := 0; i < hands; i++ {
		if _, err := table.DealNewHand(); err != nil {
			require.ErrorIs(t, err, game.ErrNotEnoughPlayers)
			break
		}
		_, err := table.RunBots()
		require.NoError(t, err)
		played++
	}
	clock.Advance(90 * time.Second)

	summary := tracker.Summary()
	assert.Equal(t, played, summary.HandsPlayed)
	assert.Equal(t, 90*time.Second, summary.PlayTime)
	assert.Equal(t, summary.HandsWon, summary.ShowdownWins+summary.NonShowdownWins)
	assert.Equal(t, table.Players()[0].Chips-cfg.StartingChips, summary.TotalWinnings)
	assert.Positive(t, summary.BiggestPot)

	stats := tracker.Statistics()
	require.NoError(t, stats.Validate())

	tracker.Reset(20)
	assert.Zero(t, tracker.Summary().HandsPlayed)
	assert.Zero(t, tracker.Summary().PlayTime)
}

func TestTrackerCountsFoldWins(t *testing.T) {
	t.Parallel()
	tracker := NewTracker(1, 10, quartz.NewMock(t))
	tracker.OnEvent(game.HandStartEvent{
		HandNumber: 1,
		Players: []game.Player{
			{ID: 0, Chips: 995, CurrentBet: 5, TotalBet: 5},
			{ID: 1, Chips: 990, CurrentBet: 10, TotalBet: 10},
		},
	})
	tracker.OnEvent(game.HandEndEvent{
		HandNumber: 1,
		Winners:    []int{1},
		PotSize:    15,
		EndedBy:    game.EndedByFold,
		Chips:      []int{995, 1005},
	})

	summary := tracker.Summary()
	assert.Equal(t, 1, summary.HandsPlayed)
	assert.Equal(t, 1, summary.NonShowdownWins)
	assert.Equal(t, 5, summary.TotalWinnings)
	assert.InDelta(t, 0.5, summary.MeanBB, 1e-9)
}
