package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/randutil"
)

func TestGenerate(t *testing.T) {
	t.Parallel()
	id := Generate()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateSortsByTime(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	g := NewGenerator(clock, randutil.New(9))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, g.Generate())
		clock.Advance(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	a := NewGenerator(clock, randutil.New(3)).Generate()
	b := NewGenerator(clock, randutil.New(3)).Generate()
	assert.Equal(t, a, b)
	require.NoError(t, Validate(a))
}

func TestEncode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, strings.Repeat("0", Length), encode([16]byte{}))

	var full [16]byte
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), encode(full))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2xcejqtf2nbrexx3vqjhp4", true},
		{"too long", "01h2xcejqtf2nbrexx3vqjhp411", true},
		{"overflows 128 bits", "81h2xcejqtf2nbrexx3vqjhp41", true},
		{"excluded letter", "01h2xcejqtf2nbrexx3vqjhpi1", true},
		{"upper case", "01H2XCEJQTF2NBREXX3VQJHP41", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
