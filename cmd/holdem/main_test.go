package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/statistics"
)

func TestEvalCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := EvalCmd{Hole: "AsAd", Board: "AcKdKh2c3s"}
	require.NoError(t, cmd.run(&out))

	assert.Contains(t, out.String(), "(AA, Premium, top 0% of starting hands)")
	assert.Contains(t, out.String(), "Hand:  Full House (Aces over Kings)")
}

func TestEvalCmdIncomplete(t *testing.T) {
	var out bytes.Buffer
	cmd := EvalCmd{Hole: "7h2c", Board: "Ks"}
	require.NoError(t, cmd.run(&out))
	assert.Contains(t, out.String(), "Hand:  incomplete, 2 more cards needed")
}

func TestEvalCmdRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  EvalCmd
		want string
	}{
		{"one hole card", EvalCmd{Hole: "As"}, "need exactly 2 hole cards"},
		{"bad card", EvalCmd{Hole: "AsZz"}, "invalid hole cards"},
		{"long board", EvalCmd{Hole: "AsAd", Board: "2c3c4c5c6c7c"}, "at most 5 cards"},
		{"duplicate", EvalCmd{Hole: "AsAd", Board: "As2c3c"}, "duplicate card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.run(&bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPlayCmdFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	think := 250 * time.Millisecond
	cmd := PlayCmd{Players: 5, Chips: 500, Seed: 7, ThinkTime: &think, Debug: true, Thinking: true, History: "hands.phhs"}
	require.NoError(t, cmd.apply(cfg))

	g := cfg.Game()
	assert.Equal(t, 5, g.PlayerCount)
	assert.Equal(t, 500, g.StartingChips)
	assert.Equal(t, int64(7), g.Seed)
	assert.Equal(t, think, cfg.ThinkTime())
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.True(t, cfg.UI.ShowBotThinking)
	assert.Equal(t, "hands.phhs", cfg.UI.HistoryFile)

	cmd = PlayCmd{Players: 9}
	require.ErrorIs(t, cmd.apply(config.Default()), game.ErrInvalidConfiguration)
}

func TestResetReplaysTheDeck(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 7
	table, err := newTable(cfg, []bot.Spec{{Kind: bot.KindCall}}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), table.Config().Seed)

	first, err := table.DealNewHand()
	require.NoError(t, err)
	_, err = table.PlayerAction(0, game.Fold, 0)
	require.NoError(t, err)

	require.NoError(t, table.Reset(table.Config()))
	again, err := table.DealNewHand()
	require.NoError(t, err)

	assert.Equal(t, first.Players[0].Hand, again.Players[0].Hand)
	assert.Equal(t, table.View(0).Players[0].Hand, again.Players[0].Hand)
}

func TestPrintReport(t *testing.T) {
	stats := statistics.Statistics{}
	stats.Add(statistics.HandResult{NetChips: 20, NetBB: 2, Won: true, FinalPotSize: 40, FinalPotBB: 4})
	report := &simulator.Report{
		Sessions:   make([]simulator.SessionResult, 3),
		TotalHands: 1,
		Seats:      []simulator.SeatReport{{Seat: 0, Name: "Bot", Stats: stats}},
	}

	var out bytes.Buffer
	printReport(&out, report, time.Second)
	assert.Contains(t, out.String(), "3 sessions, 1 hands in 1s")
	assert.Contains(t, out.String(), "Biggest pot")
	assert.Contains(t, out.String(), "Bot")
}
