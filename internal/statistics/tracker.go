package statistics

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/game"
)

// Summary is a point-in-time view of a seat's session.
type Summary struct {
	HandsPlayed     int
	HandsWon        int
	TotalWinnings   int
	BiggestPot      int
	ShowdownWins    int
	NonShowdownWins int
	WinRate         float64
	MeanBB          float64
	StdDevBB        float64
	PlayTime        time.Duration
}

// Tracker follows one seat through table events.
type Tracker struct {
	seat     int
	bigBlind int
	clock    quartz.Clock

	mu         sync.Mutex
	started    time.Time
	stats      Statistics
	inHand     bool
	startStack int // stack before the blinds
	street     game.Phase
}

// NewTracker tracks seat. Play time is measured on clock from now.
func NewTracker(seat, bigBlind int, clock quartz.Clock) *Tracker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Tracker{
		seat:     seat,
		bigBlind: max(bigBlind, 1),
		clock:    clock,
		started:  clock.Now(),
	}
}

// OnEvent implements game.EventSubscriber.
func (t *Tracker) OnEvent(event game.GameEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := event.(type) {
	case game.HandStartEvent:
		t.inHand = false
		if t.seat >= len(e.Players) {
			return
		}
		p := e.Players[t.seat]
		if p.IsFolded && p.TotalBet == 0 {
			return // sitting out with no chips
		}
		t.inHand = true
		t.startStack = p.Chips + p.TotalBet
		t.street = game.Preflop

	case game.StreetChangeEvent:
		t.street = e.Phase

	case game.HandEndEvent:
		if !t.inHand {
			return
		}
		t.inHand = false
		net := e.Chips[t.seat] - t.startStack
		won := false
		for _, id := range e.Winners {
			won = won || id == t.seat
		}
		street := t.street
		if e.EndedBy == game.EndedByShowdown {
			street = game.Showdown
		}
		t.stats.Add(HandResult{
			NetChips:       net,
			NetBB:          float64(net) / float64(t.bigBlind),
			Won:            won,
			WentToShowdown: e.EndedBy == game.EndedByShowdown,
			FinalPotSize:   e.PotSize,
			FinalPotBB:     float64(e.PotSize) / float64(t.bigBlind),
			StreetReached:  street,
		})
	}
}

// Summary returns the statistics so far.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.stats
	return Summary{
		HandsPlayed:     s.Hands,
		HandsWon:        s.HandsWon,
		TotalWinnings:   s.TotalWinnings,
		BiggestPot:      s.MaxPotChips,
		ShowdownWins:    s.ShowdownWins,
		NonShowdownWins: s.NonShowdownWins,
		WinRate:         s.WinRate(),
		MeanBB:          s.Mean(),
		StdDevBB:        s.StdDev(),
		PlayTime:        t.clock.Now().Sub(t.started),
	}
}

// Statistics returns a copy of the accumulated statistics.
func (t *Tracker) Statistics() Statistics {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats
	s.Values = slices.Clone(s.Values)
	s.StreetsReached = maps.Clone(s.StreetsReached)
	return s
}

// Reset clears the statistics and restarts the play clock.
func (t *Tracker) Reset(bigBlind int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = Statistics{}
	t.inHand = false
	t.bigBlind = max(bigBlind, 1)
	t.started = t.clock.Now()
}
