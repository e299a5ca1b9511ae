// Package pacer spaces out bot turns so a person watching the table can
// follow them. The table applies every action synchronously; the pacer only
// decides when to ask it to.
package pacer

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/game"
)

// DefaultThinkTime is the pause before each bot action.
const DefaultThinkTime = 1500 * time.Millisecond

// Table is the part of game.Table the pacer drives.
type Table interface {
	PendingBotTurn() (game.TurnToken, bool)
	PlayBotTurn(token game.TurnToken) (game.RoundState, error)
}

// Pacer schedules one bot turn at a time on a clock.
type Pacer struct {
	table     Table
	clock     quartz.Clock
	delay     time.Duration
	logger    *log.Logger
	onApplied func(game.RoundState, error)

	mu      sync.Mutex
	timer   *quartz.Timer
	pending game.TurnToken
	stopped bool
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithClock sets the clock timers are scheduled on.
func WithClock(clock quartz.Clock) Option {
	return func(p *Pacer) { p.clock = clock }
}

// WithDelay sets the think time. Zero plays bot turns immediately.
func WithDelay(d time.Duration) Option {
	return func(p *Pacer) { p.delay = d }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pacer) { p.logger = logger }
}

// OnApplied registers a callback run after every attempted bot turn.
func OnApplied(fn func(game.RoundState, error)) Option {
	return func(p *Pacer) { p.onApplied = fn }
}

// New creates a pacer for table.
func New(table Table, opts ...Option) *Pacer {
	p := &Pacer{
		table: table,
		delay: DefaultThinkTime,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.clock == nil {
		p.clock = quartz.NewReal()
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	if p.onApplied == nil {
		p.onApplied = func(game.RoundState, error) {}
	}
	return p
}

// Kick schedules the due bot's turn, if any. It is safe to call after every
// state change; a turn that is already scheduled is left alone.
func (p *Pacer) Kick() {
	token, ok := p.table.PendingBotTurn()
	if !ok {
		return
	}

	p.mu.Lock()
	if p.stopped || (p.timer != nil && p.pending == token) {
		p.mu.Unlock()
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.pending = token
	if p.delay <= 0 {
		p.timer = nil
		p.mu.Unlock()
		p.play(token)
		return
	}
	p.timer = p.clock.AfterFunc(p.delay, func() { p.play(token) }, "pacer", "bot")
	p.mu.Unlock()
	p.logger.Debug("Scheduled bot turn", "seat", token.Seat, "hand", token.HandNumber, "delay", p.delay)
}

func (p *Pacer) play(token game.TurnToken) {
	p.mu.Lock()
	if p.stopped || p.pending != token {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.pending = game.TurnToken{}
	p.mu.Unlock()

	state, err := p.table.PlayBotTurn(token)
	switch {
	case errors.Is(err, game.ErrStaleTurn):
		p.logger.Debug("Dropped stale bot turn", "seat", token.Seat, "hand", token.HandNumber)
	case err != nil:
		p.logger.Error("Bot turn failed", "seat", token.Seat, "error", err)
	}
	p.Kick()
	p.onApplied(state, err)
}

// Stop cancels any scheduled turn. A stopped pacer ignores Kick.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Pending reports whether a bot turn is scheduled.
func (p *Pacer) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}
