package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
)

// TurnToken identifies one pending decision. It goes stale as soon as any
// action is applied or a new hand is dealt.
type TurnToken struct {
	HandNumber int
	Seq        int
	Seat       int
}

// Table owns the players and their stacks across hands and serialises every
// state change behind a single lock.
type Table struct {
	mu sync.Mutex

	cfg        Config
	players    []Player
	agents     []Agent
	round      RoundState
	handNumber int

	rng          *rand.Rand
	agentFactory AgentFactory
	logger       *log.Logger
	bus          EventBus
	clock        quartz.Clock
}

// Option configures a Table.
type Option func(*Table)

// WithAgents installs the factory that decides which seats are bots.
func WithAgents(factory AgentFactory) Option {
	return func(t *Table) { t.agentFactory = factory }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// WithEventBus publishes table events to bus.
func WithEventBus(bus EventBus) Option {
	return func(t *Table) { t.bus = bus }
}

// WithRNG overrides the random source used to seed each deck.
func WithRNG(rng *rand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// NewTable validates cfg and seats the players with their starting stacks.
func NewTable(cfg Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Table{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	if t.bus == nil {
		t.bus = NewEventBus()
	}
	if t.clock == nil {
		t.clock = quartz.NewReal()
	}
	if t.rng == nil {
		t.rng = t.seededRNG(cfg.Seed)
	}
	t.seat(cfg)
	return t, nil
}

func (t *Table) seededRNG(seed int64) *rand.Rand {
	if seed != 0 {
		return randutil.New(seed)
	}
	rng, seed := randutil.NewTimeSeeded()
	t.logger.Debug("Seeded table from clock", "seed", seed)
	return rng
}

func (t *Table) seat(cfg Config) {
	t.cfg = cfg
	t.handNumber = 0
	t.round = RoundState{Status: Waiting, CurrentPlayer: -1}
	t.players = make([]Player, cfg.PlayerCount)
	t.agents = make([]Agent, cfg.PlayerCount)
	for i, name := range cfg.Names() {
		t.players[i] = Player{ID: i, Name: name, Chips: cfg.StartingChips}
		if t.agentFactory != nil {
			if agent := t.agentFactory(i, name); agent != nil {
				t.agents[i] = agent
				t.players[i].IsBot = true
			}
		}
	}
}

// Reset reseats every player with the configured starting stack. The bot
// agents are rebuilt from the factory.
func (t *Table) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if cfg.Seed != 0 {
		t.rng = randutil.New(cfg.Seed)
	}
	t.seat(cfg)
	t.logger.Info("Session reset", "players", cfg.PlayerCount, "chips", cfg.StartingChips)
	return nil
}

// Subscribe registers a subscriber on the table's event bus.
func (t *Table) Subscribe(sub EventSubscriber) {
	t.bus.Subscribe(sub)
}

// Config returns the session config.
func (t *Table) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg
}

// DealNewHand shuffles a fresh deck and starts the next hand.
func (t *Table) DealNewHand() (RoundState, error) {
	t.mu.Lock()
	state, events, err := t.dealLocked()
	t.mu.Unlock()
	t.publish(events)
	return state, err
}

func (t *Table) dealLocked() (RoundState, []GameEvent, error) {
	if err := checkLifecycle(t.round.Status, Playing); err != nil {
		return t.round.Clone(), nil, err
	}
	d := deck.New(randutil.Derive(t.rng))
	round, err := DealNewHand(t.players, t.cfg.Rules(), d, t.handNumber+1)
	if err != nil {
		return t.round.Clone(), nil, err
	}
	t.handNumber++
	t.round = round

	now := t.clock.Now()
	start := HandStartEvent{
		HandNumber: round.HandNumber,
		Players:    clonePlayers(round.Players),
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
		Pot:        round.Pot,
		timestamp:  now,
	}
	for i := range start.Players {
		start.Players[i].Hand = nil
	}
	events := []GameEvent{start}
	if round.Status == Finished || len(round.Community) > 0 {
		// Blinds put everyone all in.
		fresh := round
		fresh.Community = nil
		fresh.Status = Playing
		events = append(events, streetEvents(fresh, round, now)...)
		t.finishLocked()
	}

	t.logger.Info("Dealt hand", "hand", round.HandNumber, "pot", round.Pot, "to_act", round.CurrentPlayer)
	return round.Clone(), events, nil
}

// PlayerAction applies an action for a human seat.
func (t *Table) PlayerAction(seat int, action Action, amount int) (RoundState, error) {
	t.mu.Lock()
	if seat >= 0 && seat < len(t.players) && t.players[seat].IsBot {
		t.mu.Unlock()
		return t.State(), fmt.Errorf("%w: seat %d", ErrBotSeat, seat)
	}
	state, events, err := t.applyLocked(seat, action, amount, "")
	t.mu.Unlock()
	t.publish(events)
	return state, err
}

// PendingBotTurn returns a token for the bot that is due to act, if any.
func (t *Table) PendingBotTurn() (TurnToken, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pendingLocked()
}

func (t *Table) pendingLocked() (TurnToken, bool) {
	r := t.round
	if r.Status != Playing || r.Showdown || r.CurrentPlayer < 0 {
		return TurnToken{}, false
	}
	if t.agents[r.CurrentPlayer] == nil {
		return TurnToken{}, false
	}
	return TurnToken{HandNumber: r.HandNumber, Seq: r.Seq, Seat: r.CurrentPlayer}, true
}

// PlayBotTurn asks the due bot for a decision and applies it. The token must
// still describe the current turn, so a decision scheduled before another
// action landed is rejected with ErrStaleTurn.
func (t *Table) PlayBotTurn(token TurnToken) (RoundState, error) {
	t.mu.Lock()
	current, ok := t.pendingLocked()
	if !ok || current != token {
		t.mu.Unlock()
		return t.State(), fmt.Errorf("%w: hand %d seq %d", ErrStaleTurn, token.HandNumber, token.Seq)
	}

	p := t.round.Players[token.Seat]
	decision := t.agents[token.Seat].Decide(DecisionContext{
		Seat:         token.Seat,
		HoleCards:    p.Hand,
		Community:    t.round.Community,
		AmountToCall: t.round.AmountToCall(token.Seat),
		Stack:        p.Chips,
		Pot:          t.round.Pot,
		Phase:        t.round.Phase,
	})
	action, amount := normalise(t.round, token.Seat, decision)
	t.logger.Debug("Bot decided", "seat", token.Seat, "name", p.Name,
		"action", action, "amount", amount, "reason", decision.Reasoning)

	state, events, err := t.applyLocked(token.Seat, action, amount, decision.Reasoning)
	t.mu.Unlock()
	t.publish(events)
	return state, err
}

// RunBots plays bot turns until a human is due or the hand is over.
func (t *Table) RunBots() (RoundState, error) {
	for {
		token, ok := t.PendingBotTurn()
		if !ok {
			return t.State(), nil
		}
		if _, err := t.PlayBotTurn(token); err != nil {
			return t.State(), err
		}
	}
}

// normalise turns an agent decision into an action the round accepts.
func normalise(r RoundState, seat int, d Decision) (Action, int) {
	p := r.Players[seat]
	toCall := r.AmountToCall(seat)
	switch d.Action {
	case Fold:
		if toCall == 0 {
			return Check, 0
		}
	case Check:
		if toCall > 0 {
			return Fold, 0
		}
	case Call:
		if toCall == 0 {
			return Check, 0
		}
	case Raise:
		amount := min(max(d.Amount, 1), p.Chips)
		if p.Chips == 0 {
			if toCall == 0 {
				return Check, 0
			}
			return Fold, 0
		}
		if p.CurrentBet+amount <= r.CurrentBet && amount < p.Chips {
			if toCall == 0 {
				return Check, 0
			}
			return Call, 0
		}
		return Raise, amount
	}
	return d.Action, 0
}

func (t *Table) applyLocked(seat int, action Action, amount int, reasoning string) (RoundState, []GameEvent, error) {
	before := t.round
	after, err := ApplyAction(before, seat, action, amount)
	if err != nil {
		t.logger.Debug("Rejected action", "seat", seat, "action", action, "amount", amount, "error", err)
		return before.Clone(), nil, err
	}
	t.round = after
	events := diffEvents(before, after, seat, action, reasoning, t.clock.Now())
	if after.Status == Finished {
		t.finishLocked()
	}
	return after.Clone(), events, nil
}

// finishLocked copies the settled stacks back onto the table's players.
func (t *Table) finishLocked() {
	r := t.round
	for i, p := range r.Players {
		t.players[i].Chips = p.Chips
	}
	t.logger.Info("Hand finished", "hand", r.HandNumber, "winners", r.Winners, "ended_by", r.EndedBy)
}

func (t *Table) publish(events []GameEvent) {
	for _, e := range events {
		t.bus.Publish(e)
	}
}

// State returns a copy of the current round with every card visible.
func (t *Table) State() RoundState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round.Clone()
}

// View returns the round as seen from viewer's seat: other players' hole
// cards stay hidden until showdown. A negative viewer sees no hole cards.
func (t *Table) View(viewer int) RoundState {
	s := t.State()
	if s.Showdown {
		return s
	}
	for i := range s.Players {
		if i != viewer {
			s.Players[i].Hand = nil
		}
	}
	return s
}

// Players returns the seated players with their persistent stacks.
func (t *Table) Players() []Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.round.Status == Playing {
		return clonePlayers(t.round.Players)
	}
	return clonePlayers(t.players)
}

// TotalChips returns every stack plus the pot of the hand in progress.
func (t *Table) TotalChips() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.round.Status == Playing {
		return t.round.TotalChips()
	}
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

// HandNumber returns the number of hands dealt since the last reset.
func (t *Table) HandNumber() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handNumber
}
