package tui

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

type lineKind int

const (
	lineNormal lineKind = iota
	lineHeader
	lineStreet
	lineWin
	lineError
	lineInfo
	lineThinking
)

type logLine struct {
	kind lineKind
	text string
}

func (l logLine) render() string {
	switch l.kind {
	case lineHeader:
		return HeaderStyle.Render(" " + l.text + " ")
	case lineStreet:
		return StreetStyle.Render(l.text)
	case lineWin:
		return SuccessStyle.Render(l.text)
	case lineError:
		return ErrorStyle.Render(l.text)
	case lineInfo:
		return InfoStyle.Render(l.text)
	case lineThinking:
		return InfoStyle.Italic(true).Render(l.text)
	default:
		return l.text
	}
}

// OnEvent implements game.EventSubscriber. It may be called from the pacer's
// timer goroutine, so lines are queued and picked up by the next Update.
func (m *Model) OnEvent(event game.GameEvent) {
	m.mu.Lock()
	m.pending = append(m.pending, m.describe(event)...)
	m.mu.Unlock()
	m.signal()
}

// describe turns an event into log lines. Callers hold m.mu.
func (m *Model) describe(event game.GameEvent) []logLine {
	switch e := event.(type) {
	case game.HandStartEvent:
		lines := []logLine{{lineHeader, fmt.Sprintf("Hand #%d", e.HandNumber)}}
		blinds := []string{"small blind", "big blind"}
		for _, p := range e.Players {
			if p.CurrentBet > 0 && len(blinds) > 0 {
				lines = append(lines, logLine{lineInfo, fmt.Sprintf("%s posts %s $%d", p.Name, blinds[0], p.CurrentBet)})
				blinds = blinds[1:]
			}
		}
		return append(lines, logLine{lineStreet, "*** PRE-FLOP ***"})

	case game.PlayerActionEvent:
		var text string
		switch e.Action {
		case game.Fold:
			text = e.Name + " folds"
		case game.Check:
			text = e.Name + " checks"
		case game.Call:
			text = fmt.Sprintf("%s calls $%d", e.Name, e.Amount)
		case game.Raise:
			text = fmt.Sprintf("%s raises $%d", e.Name, e.Amount)
		}
		lines := []logLine{{lineNormal, fmt.Sprintf("%s (pot $%d)", text, e.PotAfter)}}
		if m.showThinking && e.Reasoning != "" {
			lines = append(lines, logLine{lineThinking, fmt.Sprintf("  %s thinks: %s", e.Name, e.Reasoning)})
		}
		return lines

	case game.StreetChangeEvent:
		return []logLine{{lineStreet, fmt.Sprintf("*** %s *** [%s]", strings.ToUpper(e.Phase.String()), deck.FormatCards(e.Community))}}

	case game.HandEndEvent:
		var lines []logLine
		if e.EndedBy == game.EndedByShowdown {
			lines = append(lines, logLine{lineStreet, fmt.Sprintf("*** SHOWDOWN *** [%s]", deck.FormatCards(e.Board))})
			for id, desc := range m.seatOrder(e.Descriptions) {
				lines = append(lines, logLine{lineInfo, fmt.Sprintf("%s shows %s", m.name(id), desc)})
			}
		}
		for _, p := range e.Payouts {
			text := fmt.Sprintf("%s wins $%d", m.name(p.PlayerID), p.Amount)
			if desc, ok := e.Descriptions[p.PlayerID]; ok {
				text += " with " + desc
			}
			lines = append(lines, logLine{lineWin, text})
		}
		return append(lines, logLine{lineInfo, "Press Enter to deal the next hand"})
	}
	return nil
}

// seatOrder yields descriptions ordered by seat.
func (m *Model) seatOrder(descriptions map[int]string) func(func(int, string) bool) {
	return func(yield func(int, string) bool) {
		for id := range m.names {
			if desc, ok := descriptions[id]; ok {
				if !yield(id, desc) {
					return
				}
			}
		}
	}
}

func (m *Model) name(id int) string {
	if id >= 0 && id < len(m.names) {
		return m.names[id]
	}
	return fmt.Sprintf("Seat %d", id+1)
}
