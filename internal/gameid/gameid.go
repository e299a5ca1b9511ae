// Package gameid generates session identifiers: a UUIDv7 rendered as 26
// characters of Crockford base32, so identifiers sort by creation time.
package gameid

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/coder/quartz"
)

// Length is the number of characters in an identifier.
const Length = 26

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator creates identifiers from a clock and a random source.
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand // nil uses crypto/rand
}

// NewGenerator returns a generator. A nil clock uses the real clock and a
// nil rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns a new identifier using the real clock and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a new identifier.
func (g *Generator) Generate() string {
	var id [16]byte

	// 48-bit millisecond timestamp, then random bits
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint64(id[:8], ms<<16)
	if g.rng != nil {
		binary.BigEndian.PutUint16(id[6:8], uint16(g.rng.Uint32()))
		binary.BigEndian.PutUint64(id[8:], g.rng.Uint64())
	} else if _, err := crand.Read(id[6:]); err != nil {
		panic("gameid: crypto/rand failed: " + err.Error())
	}

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant
	return encode(id)
}

// encode renders 128 bits as 26 base32 characters, most significant first.
// The leading character carries only 3 bits.
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters whose value fits in 128 bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
