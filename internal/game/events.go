package game

import (
	"slices"
	"sync"
	"time"

	"github.com/lox/holdem-engine/internal/deck"
)

// EventType identifies a table event.
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything published by a Table.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published after the blinds are posted.
type HandStartEvent struct {
	HandNumber int
	Players    []Player // hole cards removed
	SmallBlind int
	BigBlind   int
	Pot        int
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published for every applied action.
type PlayerActionEvent struct {
	HandNumber int
	Seat       int
	Name       string
	Action     Action
	Amount     int // chips moved into the pot by this action
	Phase      Phase
	Reasoning  string
	PotAfter   int
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published when community cards are dealt.
type StreetChangeEvent struct {
	HandNumber int
	Phase      Phase
	Community  []deck.Card
	timestamp  time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published once the pot has been paid out.
type HandEndEvent struct {
	HandNumber   int
	Winners      []int
	Payouts      []Payout
	PotSize      int
	EndedBy      EndReason
	Board        []deck.Card
	Hands        [][]deck.Card  // hole cards by seat, nil for seats dealt out
	Descriptions map[int]string // showdown hand descriptions by player ID
	Chips        []int          // every stack after payout, by seat
	Contributed  []int          // chips each seat put in this hand
	timestamp    time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(event GameEvent)

// OnEvent calls f.
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. SubscriberFunc values cannot be
// compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if _, ok := sub.(SubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = slices.Delete(bus.subscribers, i, i+1)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()
	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

// diffEvents derives the events between two states of the same hand.
func diffEvents(before, after RoundState, seat int, action Action, reasoning string, now time.Time) []GameEvent {
	events := []GameEvent{PlayerActionEvent{
		HandNumber: after.HandNumber,
		Seat:       seat,
		Name:       after.Players[seat].Name,
		Action:     action,
		Amount:     after.Players[seat].TotalBet - before.Players[seat].TotalBet,
		Phase:      before.Phase,
		Reasoning:  reasoning,
		PotAfter:   before.Pot + after.Players[seat].TotalBet - before.Players[seat].TotalBet,
		timestamp:  now,
	}}
	return append(events, streetEvents(before, after, now)...)
}

func streetEvents(before, after RoundState, now time.Time) []GameEvent {
	var events []GameEvent
	for n := len(before.Community); n < len(after.Community); {
		phase := phaseForBoard(n)
		step := streets[phase]
		n += step.cards
		events = append(events, StreetChangeEvent{
			HandNumber: after.HandNumber,
			Phase:      step.next,
			Community:  slices.Clone(after.Community[:n]),
			timestamp:  now,
		})
	}
	if after.Status == Finished && before.Status != Finished {
		events = append(events, handEndEvent(before, after, now))
	}
	return events
}

func phaseForBoard(cards int) Phase {
	switch cards {
	case 0:
		return Preflop
	case 3:
		return Flop
	case 4:
		return Turn
	default:
		return River
	}
}

func handEndEvent(before, after RoundState, now time.Time) HandEndEvent {
	pot := 0
	for _, p := range after.Payouts {
		pot += p.Amount
	}
	e := HandEndEvent{
		HandNumber:  after.HandNumber,
		Winners:     slices.Clone(after.Winners),
		Payouts:     slices.Clone(after.Payouts),
		PotSize:     pot,
		EndedBy:     after.EndedBy,
		Board:       slices.Clone(after.Community),
		Hands:       make([][]deck.Card, len(after.Players)),
		Chips:       make([]int, len(after.Players)),
		Contributed: make([]int, len(after.Players)),
		timestamp:   now,
	}
	for i, p := range after.Players {
		e.Hands[i] = slices.Clone(p.Hand)
		e.Chips[i] = p.Chips
		e.Contributed[i] = p.TotalBet
	}
	if len(after.Results) > 0 {
		e.Descriptions = make(map[int]string, len(after.Results))
		for id, r := range after.Results {
			e.Descriptions[id] = r.Description
		}
	}
	return e
}
