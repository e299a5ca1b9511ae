package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

func newTestModel(t *testing.T, players int, opts ...Option) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	cfg := game.DefaultConfig()
	cfg.PlayerCount = players
	cfg.Seed = 42
	table, err := game.NewTable(cfg,
		game.WithAgents(func(seat int, name string) game.Agent {
			if seat == 0 {
				return nil
			}
			return bot.CallBot{}
		}),
		game.WithLogger(logger),
	)
	require.NoError(t, err)

	opts = append([]Option{WithThinkTime(0)}, opts...)
	return NewModel(table, logger, opts...)
}

func submit(m *Model, input string) tea.Cmd {
	m.actionInput.SetValue(input)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func logContains(m *Model, substr string) bool {
	for _, line := range m.Log() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestEnterDealsAHand(t *testing.T) {
	m := newTestModel(t, 2)

	submit(m, "")

	s := m.State()
	assert.Equal(t, game.Playing, s.Status)
	assert.Equal(t, 1, s.HandNumber)
	assert.True(t, m.humansTurn(), "small blind acts first preflop")
	assert.True(t, logContains(m, "Hand #1"))
	assert.True(t, logContains(m, "You posts small blind $5"))
	assert.True(t, logContains(m, "Bot posts big blind $10"))
	assert.True(t, logContains(m, "*** PRE-FLOP ***"))

	assert.Len(t, s.Players[0].Hand, 2)
	assert.Empty(t, s.Players[1].Hand, "bot cards stay hidden")
}

func TestFoldEndsTheHand(t *testing.T) {
	m := newTestModel(t, 2)
	submit(m, "deal")
	submit(m, "fold")

	s := m.State()
	assert.Equal(t, game.Finished, s.Status)
	assert.Equal(t, game.EndedByFold, s.EndedBy)
	assert.True(t, logContains(m, "You folds"))
	assert.True(t, logContains(m, "Bot wins $15"))
	assert.Equal(t, 995, s.Players[0].Chips)
	assert.Equal(t, 1005, s.Players[1].Chips)
}

func TestCheckDownToShowdown(t *testing.T) {
	m := newTestModel(t, 2)
	submit(m, "")
	submit(m, "call")

	for i := 0; i < 10 && m.State().Status == game.Playing; i++ {
		require.True(t, m.humansTurn())
		submit(m, "check")
	}

	s := m.State()
	require.Equal(t, game.Finished, s.Status)
	assert.True(t, s.Showdown)
	assert.Len(t, s.Players[1].Hand, 2, "showdown reveals every hand")
	assert.True(t, logContains(m, "*** FLOP ***"))
	assert.True(t, logContains(m, "*** RIVER ***"))
	assert.True(t, logContains(m, "*** SHOWDOWN ***"))
	assert.Equal(t, 2000, s.Players[0].Chips+s.Players[1].Chips)
}

func TestRaiseAddsToTheCall(t *testing.T) {
	m := newTestModel(t, 2)
	submit(m, "")

	submit(m, "raise 20")

	// 5 to call plus 20 on top of the small blind
	assert.True(t, logContains(m, "You raises $25"))
	assert.True(t, logContains(m, "Bot calls $20"))
	assert.Equal(t, 60, m.State().Pot)
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		deal  bool
		input string
		want  string
	}{
		{"unknown command", false, "dance", `Unknown command "dance"`},
		{"act between hands", false, "call", "No hand in progress"},
		{"raise without amount", true, "raise", "usage: raise <amount>"},
		{"raise with junk", true, "raise lots", `invalid raise amount "lots"`},
		{"deal mid hand", true, "deal", "Hand #1 is still in progress"},
		{"check facing a bet", true, "check", "You cannot check, $5 to call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 2)
			if tt.deal {
				submit(m, "")
			}
			seq := m.State().Seq
			submit(m, tt.input)
			assert.True(t, logContains(m, tt.want), "log: %v", m.Log())
			assert.Equal(t, seq, m.State().Seq, "state should not change")
		})
	}
}

func TestBotsWaitForThinkTime(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	m := newTestModel(t, 3, WithThinkTime(time.Second), WithClock(mClock))
	submit(m, "")
	require.True(t, m.humansTurn())

	submit(m, "call")
	m.Update(activityMsg{})
	assert.False(t, logContains(m, "Bot calls"), "bot acted before its think time")
	assert.Equal(t, 1, m.State().CurrentPlayer)

	mClock.Advance(time.Second).MustWait(ctx)
	m.Update(activityMsg{})
	assert.True(t, logContains(m, "Bot checks"), "log: %v", m.Log())
	assert.Equal(t, 2, m.State().CurrentPlayer)

	mClock.Advance(time.Second).MustWait(ctx)
	m.Update(activityMsg{})
	assert.True(t, logContains(m, "Bot 2 calls $10"), "log: %v", m.Log())
}

func TestStatsAndReset(t *testing.T) {
	m := newTestModel(t, 2)
	submit(m, "")
	submit(m, "fold")
	submit(m, "stats")

	assert.True(t, logContains(m, "Hands played: 1, won: 0"))
	assert.True(t, logContains(m, "Winnings: -5"))

	submit(m, "reset")
	assert.Equal(t, []string{"Session reset, everyone has $1000. Press Enter to deal."}, m.Log())
	assert.Zero(t, m.tracker.Summary().HandsPlayed)
	for _, p := range m.table.Players() {
		assert.Equal(t, 1000, p.Chips)
	}
}

func TestBotThinkingIsLogged(t *testing.T) {
	m := newTestModel(t, 2, WithBotThinking(true))
	m.OnEvent(game.PlayerActionEvent{Name: "Bot", Action: game.Call, Amount: 5, PotAfter: 20, Reasoning: "pot odds"})
	m.Update(activityMsg{})

	assert.True(t, logContains(m, "Bot calls $5 (pot $20)"))
	assert.True(t, logContains(m, "Bot thinks: pot odds"))
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, 2)
	cmd := submit(m, "quit")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, m.View())

	// a second quit must not close the done channel twice
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestViewRendersTable(t *testing.T) {
	m := newTestModel(t, 3)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	submit(m, "")

	view := m.View()
	assert.Contains(t, view, "Pot: $15")
	assert.Contains(t, view, "Hand #1")
	assert.Contains(t, view, "[?? ??]")
	assert.Contains(t, view, "Actions:")
}
