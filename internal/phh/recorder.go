package phh

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
)

// Recorder builds a hand history from table events. Players are listed in
// seat order, skipping seats that were dealt out, so p1 and p2 are the
// blinds.
type Recorder struct {
	table string
	clock quartz.Clock

	mu      sync.Mutex
	hands   []*HandHistory
	current *HandHistory
	pos     []int // seat to player index, -1 when dealt out
	street  []int // chips each seat has put in on this street
	board   int   // community cards recorded so far
}

// NewRecorder records hands for the session named table.
func NewRecorder(table string, clock quartz.Clock) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{table: table, clock: clock}
}

// OnEvent implements game.EventSubscriber.
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.HandStartEvent:
		r.start(e)

	case game.PlayerActionEvent:
		if r.current == nil || e.Seat < 0 || e.Seat >= len(r.pos) || r.pos[e.Seat] < 0 {
			return
		}
		r.street[e.Seat] += e.Amount
		r.current.Actions = append(r.current.Actions, FormatAction(r.pos[e.Seat], e.Action, r.street[e.Seat]))

	case game.StreetChangeEvent:
		if r.current == nil {
			return
		}
		clear(r.street)
		if len(e.Community) > r.board {
			r.current.Actions = append(r.current.Actions, "d db "+Cards(e.Community[r.board:]))
			r.board = len(e.Community)
		}

	case game.HandEndEvent:
		if r.current != nil {
			r.finish(e)
		}
	}
}

func (r *Recorder) start(e game.HandStartEvent) {
	h := &HandHistory{
		Variant: Variant,
		Table:   r.table,
		MinBet:  e.BigBlind,
		HandID:  strconv.Itoa(e.HandNumber),
	}
	h.setTime(r.clock.Now())

	r.pos = make([]int, len(e.Players))
	r.street = make([]int, len(e.Players))
	r.board = 0
	for seat, p := range e.Players {
		r.pos[seat] = -1
		if p.Chips+p.TotalBet == 0 {
			continue
		}
		r.pos[seat] = len(h.Players)
		r.street[seat] = p.CurrentBet
		h.Players = append(h.Players, p.Name)
		h.Seats = append(h.Seats, seat+1)
		h.Antes = append(h.Antes, 0)
		h.BlindsOrStraddles = append(h.BlindsOrStraddles, p.CurrentBet)
		h.StartingStacks = append(h.StartingStacks, p.Chips+p.TotalBet)
	}
	h.SeatCount = len(e.Players)
	r.current = h
}

func (r *Recorder) finish(e game.HandEndEvent) {
	h := r.current
	n := len(h.Players)

	deals := make([]string, 0, n)
	for seat, cards := range e.Hands {
		if seat < len(r.pos) && r.pos[seat] >= 0 && len(cards) > 0 {
			deals = append(deals, fmt.Sprintf("d dh p%d %s", r.pos[seat]+1, Cards(cards)))
		}
	}
	h.Actions = append(deals, h.Actions...)

	if e.EndedBy == game.EndedByShowdown {
		for seat := range r.pos {
			if _, shown := e.Descriptions[seat]; shown && r.pos[seat] >= 0 {
				h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", r.pos[seat]+1, Cards(e.Hands[seat])))
			}
		}
	}

	h.FinishingStacks = make([]int, n)
	h.Winnings = make([]int, n)
	for seat, chips := range e.Chips {
		if seat < len(r.pos) && r.pos[seat] >= 0 {
			h.FinishingStacks[r.pos[seat]] = chips
		}
	}
	for _, p := range e.Payouts {
		if p.PlayerID >= 0 && p.PlayerID < len(r.pos) && r.pos[p.PlayerID] >= 0 {
			h.Winnings[r.pos[p.PlayerID]] += p.Amount
		}
	}

	r.hands = append(r.hands, h)
	r.current = nil
}

// Hands returns the completed hands recorded so far.
func (r *Recorder) Hands() []*HandHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.hands)
}

// Save writes every completed hand to filename as a PHHS file, replacing
// the file atomically.
func (r *Recorder) Save(filename string) error {
	var buf bytes.Buffer
	if err := EncodeSections(&buf, r.Hands()); err != nil {
		return fmt.Errorf("phh: encode: %w", err)
	}
	return fileutil.WriteFileAtomic(filename, buf.Bytes(), 0o644)
}

// SaveHandler returns an EventSubscriber that saves to filename after every
// completed hand and reports failures to onError. Subscribe it after the
// recorder itself.
func (r *Recorder) SaveHandler(filename string, onError func(error)) game.EventSubscriber {
	return game.SubscriberFunc(func(event game.GameEvent) {
		if _, ok := event.(game.HandEndEvent); !ok {
			return
		}
		if err := r.Save(filename); err != nil && onError != nil {
			onError(err)
		}
	})
}
