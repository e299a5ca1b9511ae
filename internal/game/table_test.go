package game

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passive checks when it can and calls otherwise.
var passive = AgentFunc(func(ctx DecisionContext) Decision {
	if ctx.AmountToCall == 0 {
		return Decision{Action: Check, Reasoning: "free card"}
	}
	return Decision{Action: Call, Reasoning: "calling station"}
})

func botsFrom(seat int, agent Agent) AgentFactory {
	return func(i int, _ string) Agent {
		if i < seat {
			return nil
		}
		return agent
	}
}

type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(e GameEvent) { r.events = append(r.events, e) }

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func newTestTable(t *testing.T, cfg Config, opts ...Option) *Table {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	table, err := NewTable(cfg, opts...)
	require.NoError(t, err)
	return table
}

func TestNewTableSeatsPlayers(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.PlayerCount = 3
	table := newTestTable(t, cfg, WithAgents(botsFrom(1, passive)))

	players := table.Players()
	require.Len(t, players, 3)
	assert.Equal(t, []string{"You", "Bot", "Bot 2"}, []string{players[0].Name, players[1].Name, players[2].Name})
	assert.False(t, players[0].IsBot)
	assert.True(t, players[1].IsBot)
	assert.Equal(t, 3000, table.TotalChips())
	assert.Equal(t, Waiting, table.State().Status)
}

func TestNewTableRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.PlayerCount = 9
	_, err := NewTable(cfg)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestHumanCannotActForBot(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, DefaultConfig(), WithAgents(botsFrom(1, passive)))
	_, err := table.DealNewHand()
	require.NoError(t, err)

	before := table.State()
	_, err = table.PlayerAction(1, Call, 0)
	require.ErrorIs(t, err, ErrBotSeat)
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.Equal(t, before, table.State())
}

func TestPlayBotTurnRejectsStaleTokens(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, DefaultConfig(), WithAgents(botsFrom(1, passive)))
	_, err := table.DealNewHand()
	require.NoError(t, err)

	_, ok := table.PendingBotTurn()
	require.False(t, ok, "the human small blind acts first")

	_, err = table.PlayerAction(0, Call, 0)
	require.NoError(t, err)

	token, ok := table.PendingBotTurn()
	require.True(t, ok)
	assert.Equal(t, 1, token.Seat)

	state, err := table.PlayBotTurn(token)
	require.NoError(t, err)
	assert.Equal(t, Flop, state.Phase)

	_, err = table.PlayBotTurn(token)
	require.ErrorIs(t, err, ErrStaleTurn)
	assert.Equal(t, state, table.State())
}

func TestDealWhilePlayingIsRejected(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, DefaultConfig())
	_, err := table.DealNewHand()
	require.NoError(t, err)
	_, err = table.DealNewHand()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestViewHidesHoleCardsUntilShowdown(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, DefaultConfig(), WithAgents(botsFrom(1, passive)))
	_, err := table.DealNewHand()
	require.NoError(t, err)

	view := table.View(0)
	assert.Len(t, view.Players[0].Hand, 2)
	assert.Empty(t, view.Players[1].Hand)
	assert.Len(t, table.State().Players[1].Hand, 2, "the view is a copy")

	_, err = table.PlayerAction(0, Call, 0)
	require.NoError(t, err)
	for table.State().Status == Playing {
		if _, err := table.RunBots(); err != nil {
			t.Fatal(err)
		}
		if s := table.State(); s.Status == Playing {
			_, err := table.PlayerAction(0, Check, 0)
			require.NoError(t, err)
		}
	}

	view = table.View(0)
	require.True(t, view.Showdown)
	assert.Len(t, view.Players[1].Hand, 2)
}

func TestBotSessionConservesChips(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.PlayerCount = 4
	table := newTestTable(t, cfg, WithAgents(botsFrom(0, passive)))

	for i := 0; i < 50; i++ {
		_, err := table.DealNewHand()
		if err != nil {
			require.ErrorIs(t, err, ErrNotEnoughPlayers)
			break
		}
		state, err := table.RunBots()
		require.NoError(t, err)
		require.Equal(t, Finished, state.Status)
		require.Equal(t, 4000, table.TotalChips())
	}
	assert.Positive(t, table.HandNumber())
}

func TestTableEvents(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	table := newTestTable(t, DefaultConfig(),
		WithAgents(botsFrom(0, passive)),
		WithEventBus(bus),
		WithClock(clock),
	)
	_, err := table.DealNewHand()
	require.NoError(t, err)
	_, err = table.RunBots()
	require.NoError(t, err)

	types := rec.types()
	require.NotEmpty(t, types)
	assert.Equal(t, EventTypeHandStart, types[0])
	assert.Equal(t, EventTypeHandEnd, types[len(types)-1])

	var streets []Phase
	for _, e := range rec.events {
		assert.Equal(t, clock.Now(), e.Timestamp())
		if sc, ok := e.(StreetChangeEvent); ok {
			streets = append(streets, sc.Phase)
		}
	}
	assert.Equal(t, []Phase{Flop, Turn, River}, streets)

	end := rec.events[len(rec.events)-1].(HandEndEvent)
	assert.Equal(t, EndedByShowdown, end.EndedBy)
	assert.Equal(t, 20, end.PotSize)
	assert.Len(t, end.Board, 5)
	assert.Len(t, end.Descriptions, 2)
	assert.Equal(t, 2000, end.Chips[0]+end.Chips[1])

	start := rec.events[0].(HandStartEvent)
	for _, p := range start.Players {
		assert.Empty(t, p.Hand)
	}
}

func TestResetRestoresStacks(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, DefaultConfig())
	_, err := table.DealNewHand()
	require.NoError(t, err)
	_, err = table.PlayerAction(0, Fold, 0)
	require.NoError(t, err)
	require.NotEqual(t, 1000, table.Players()[0].Chips)

	cfg := DefaultConfig()
	cfg.StartingChips = 500
	require.NoError(t, table.Reset(cfg))

	for _, p := range table.Players() {
		assert.Equal(t, 500, p.Chips)
	}
	assert.Equal(t, 0, table.HandNumber())
	assert.Equal(t, Waiting, table.State().Status)

	cfg.BigBlind = 1
	require.ErrorIs(t, table.Reset(cfg), ErrInvalidConfiguration)
}

func TestNormaliseBotDecisions(t *testing.T) {
	t.Parallel()
	s, err := DealNewHand(seats(1000, 1000), blinds, riggedDeck("AsAd KcKd 2c7h9s Jd 3c"), 1)
	require.NoError(t, err)

	tests := []struct {
		name       string
		decision   Decision
		wantAction Action
		wantAmount int
	}{
		{"check facing a bet folds", Decision{Action: Check}, Fold, 0},
		{"small raise becomes a call", Decision{Action: Raise, Amount: 3}, Call, 0},
		{"raise above the bet stands", Decision{Action: Raise, Amount: 25}, Raise, 25},
		{"oversized raise is capped", Decision{Action: Raise, Amount: 5000}, Raise, 995},
		{"call passes through", Decision{Action: Call}, Call, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, amount := normalise(s, 0, tt.decision)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}

	free := mustApply(t, mustApply(t, s, 0, Call, 0), 1, Check, 0)
	action, _ := normalise(free, 0, Decision{Action: Fold})
	assert.Equal(t, Check, action)
	action, _ = normalise(free, 0, Decision{Action: Call})
	assert.Equal(t, Check, action)
}
