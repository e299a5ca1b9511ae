package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

func TestFactorySeatsHumansFirst(t *testing.T) {
	t.Parallel()
	specs := []Spec{{Kind: KindPolicy, Personality: Aggressive}, {Kind: KindCall}}
	factory := Factory(1, specs, randutil.New(1), nil)

	assert.Nil(t, factory(0, "You"))

	policy, ok := factory(1, "Bot").(*Policy)
	require.True(t, ok)
	assert.Equal(t, Aggressive, policy.Personality())

	assert.IsType(t, CallBot{}, factory(2, "Bot 2"))
	assert.IsType(t, CallBot{}, factory(3, "Bot 3"), "last spec is reused")
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindPolicy, k)
	k, err = ParseKind("Random")
	require.NoError(t, err)
	assert.Equal(t, KindRandom, k)
	_, err = ParseKind("shark")
	require.Error(t, err)
}

func TestSimpleBots(t *testing.T) {
	t.Parallel()
	free := game.DecisionContext{AmountToCall: 0, Stack: 100}
	facing := game.DecisionContext{AmountToCall: 20, Stack: 100}

	assert.Equal(t, game.Check, CallBot{}.Decide(free).Action)
	assert.Equal(t, game.Call, CallBot{}.Decide(facing).Action)
	assert.Equal(t, game.Check, FoldBot{}.Decide(free).Action)
	assert.Equal(t, game.Fold, FoldBot{}.Decide(facing).Action)

	r := NewRandBot(randutil.New(2))
	for i := 0; i < 200; i++ {
		d := r.Decide(free)
		require.Contains(t, []game.Action{game.Check, game.Raise}, d.Action)
		d = r.Decide(facing)
		if d.Action == game.Raise {
			require.Greater(t, d.Amount, 20)
			require.LessOrEqual(t, d.Amount, 100)
		}
	}
}

func TestParseSpec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Spec
		wantErr bool
	}{
		{in: "policy", want: Spec{Kind: KindPolicy, Personality: Balanced}},
		{in: "policy:aggressive", want: Spec{Kind: KindPolicy, Personality: Aggressive}},
		{in: "call", want: Spec{Kind: KindCall}},
		{in: "random", want: Spec{Kind: KindRandom}},
		{in: "policy:reckless", wantErr: true},
		{in: "shark", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "policy:conservative", Spec{Kind: KindPolicy, Personality: Conservative}.String())
	assert.Equal(t, "fold", Spec{Kind: KindFold}.String())
}
