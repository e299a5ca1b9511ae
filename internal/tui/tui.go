// Package tui is a Bubble Tea front end for playing a local table against
// bots.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/pacer"
	"github.com/lox/holdem-engine/internal/statistics"
)

// Model is the Bubble Tea model for a local table. The human always sits in
// seat 0; every other seat is driven by the pacer.
type Model struct {
	table   *game.Table
	pacer   *pacer.Pacer
	tracker *statistics.Tracker
	logger  *log.Logger
	seat    int

	thinkTime    time.Duration
	clock        quartz.Clock
	showThinking bool

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// written by OnEvent, drained by Update
	mu      sync.Mutex
	pending []logLine
	names   []string

	notify chan struct{}
	done   chan struct{}

	gameLog     []logLine
	state       game.RoundState
	sessionOver bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	width       int
	height      int
	initialized bool
}

// activityMsg reports that the table published events or a bot acted.
type activityMsg struct{}

// Option configures a Model.
type Option func(*Model)

// WithThinkTime sets how long bots wait before acting. Zero plays bot turns
// immediately.
func WithThinkTime(d time.Duration) Option {
	return func(m *Model) { m.thinkTime = d }
}

// WithClock sets the clock used for bot pacing and play time.
func WithClock(clock quartz.Clock) Option {
	return func(m *Model) { m.clock = clock }
}

// WithBotThinking shows bot reasoning in the log.
func WithBotThinking(show bool) Option {
	return func(m *Model) { m.showThinking = show }
}

// NewModel creates a model for table and subscribes it to the table's events.
func NewModel(table *game.Table, logger *log.Logger, opts ...Option) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		table:       table,
		logger:      logger.WithPrefix("tui"),
		thinkTime:   pacer.DefaultThinkTime,
		logViewport: vp,
		actionInput: ti,
		notify:      make(chan struct{}, 1),
		done:        make(chan struct{}),
		focusedPane: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = quartz.NewReal()
	}

	cfg := table.Config()
	m.names = cfg.Names()
	m.tracker = statistics.NewTracker(m.seat, cfg.BigBlind, m.clock)
	m.pacer = pacer.New(table,
		pacer.WithClock(m.clock),
		pacer.WithDelay(m.thinkTime),
		pacer.WithLogger(logger),
		pacer.OnApplied(func(game.RoundState, error) { m.signal() }),
	)
	table.Subscribe(m.tracker)
	table.Subscribe(m)

	m.state = table.View(m.seat)
	m.addLine(lineInfo, "Welcome to Texas Hold'em. Press Enter to deal, type help for commands.")
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForActivity())
}

func (m *Model) signal() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// waitForActivity returns a command that blocks until the table changes.
func (m *Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.notify:
			return activityMsg{}
		case <-m.done:
			return nil
		}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case activityMsg:
		m.sync()
		cmds = append(cmds, m.waitForActivity())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := m.actionInput.Value()
				m.actionInput.SetValue("")
				if cmd := m.submit(input); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs one line of user input.
func (m *Model) submit(input string) tea.Cmd {
	defer m.sync()

	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		if !m.handInProgress() {
			m.deal()
		}
		return nil
	}

	switch fields[0] {
	case "quit", "q", "exit":
		return m.quit()
	case "deal", "d", "next", "n":
		m.deal()
	case "reset":
		m.reset()
	case "stats":
		m.logStats()
	case "help", "h", "?":
		m.logHelp()
	case "allin", "all-in", "a":
		m.act(game.Raise, m.stack())
	default:
		action, err := game.ParseAction(fields[0])
		if err != nil {
			m.addLine(lineError, fmt.Sprintf("Unknown command %q, type help for commands", fields[0]))
			return nil
		}
		amount := 0
		if action == game.Raise {
			if amount, err = m.raiseAmount(fields[1:]); err != nil {
				m.addLine(lineError, err.Error())
				return nil
			}
		}
		m.act(action, amount)
	}
	return nil
}

// raiseAmount converts "raise N" into the chips to put in: the amount to
// call plus N, capped at the stack.
func (m *Model) raiseAmount(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: raise <amount>")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "$"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid raise amount %q", args[0])
	}
	if !m.handInProgress() {
		return n, nil
	}
	return min(m.state.AmountToCall(m.seat)+n, m.stack()), nil
}

// stack returns the human's chips behind in the current hand.
func (m *Model) stack() int {
	if m.seat >= len(m.state.Players) {
		return 0
	}
	return m.state.Players[m.seat].Chips
}

func (m *Model) act(action game.Action, amount int) {
	_, err := m.table.PlayerAction(m.seat, action, amount)
	switch {
	case errors.Is(err, game.ErrHandOver):
		m.addLine(lineError, "No hand in progress, press Enter to deal")
	case errors.Is(err, game.ErrNotYourTurn):
		m.addLine(lineError, "Wait for your turn")
	case errors.Is(err, game.ErrCannotCheck):
		m.addLine(lineError, fmt.Sprintf("You cannot check, $%d to call", m.state.AmountToCall(m.seat)))
	case err != nil:
		m.logger.Debug("Rejected action", "action", action, "amount", amount, "error", err)
		m.addLine(lineError, err.Error())
	}
	m.pacer.Kick()
}

func (m *Model) deal() {
	if m.sessionOver {
		m.addLine(lineError, "Session over, type reset to start again")
		return
	}
	_, err := m.table.DealNewHand()
	switch {
	case errors.Is(err, game.ErrNotEnoughPlayers):
		m.sessionOver = true
		m.addLine(lineWin, "Session over: only one player has chips left")
		m.logStats()
		return
	case errors.Is(err, game.ErrInvalidTransition):
		m.addLine(lineError, fmt.Sprintf("Hand #%d is still in progress", m.state.HandNumber))
		return
	case err != nil:
		m.logger.Error("Failed to deal", "error", err)
		m.addLine(lineError, err.Error())
		return
	}
	m.pacer.Kick()
}

func (m *Model) reset() {
	cfg := m.table.Config()
	if err := m.table.Reset(cfg); err != nil {
		m.addLine(lineError, err.Error())
		return
	}
	m.tracker.Reset(cfg.BigBlind)
	m.mu.Lock()
	m.pending = nil
	m.names = cfg.Names()
	m.mu.Unlock()
	m.gameLog = nil
	m.sessionOver = false
	m.addLine(lineInfo, fmt.Sprintf("Session reset, everyone has $%d. Press Enter to deal.", cfg.StartingChips))
}

func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		m.pacer.Stop()
		close(m.done)
	}
	return tea.Quit
}

func (m *Model) logStats() {
	s := m.tracker.Summary()
	m.addLine(lineHeader, "Session statistics")
	m.addLine(lineNormal, fmt.Sprintf("Hands played: %d, won: %d (%.1f%%)", s.HandsPlayed, s.HandsWon, s.WinRate*100))
	m.addLine(lineNormal, fmt.Sprintf("Winnings: %+d, biggest pot: $%d", s.TotalWinnings, s.BiggestPot))
	m.addLine(lineNormal, fmt.Sprintf("Showdown wins: %d, uncontested wins: %d", s.ShowdownWins, s.NonShowdownWins))
	m.addLine(lineNormal, fmt.Sprintf("Mean %.2f bb/hand (sd %.2f)", s.MeanBB, s.StdDevBB))
	m.addLine(lineNormal, fmt.Sprintf("Play time: %s", s.PlayTime.Round(time.Second)))
}

func (m *Model) logHelp() {
	m.addLine(lineHeader, "Commands")
	for _, line := range []string{
		"fold, check, call       act on your turn",
		"raise N                 raise by N over the amount to call",
		"allin                   put your whole stack in",
		"deal (or Enter)         deal the next hand",
		"stats                   show session statistics",
		"reset                   restart the session",
		"quit                    leave the table",
	} {
		m.addLine(lineInfo, line)
	}
}

// sync drains queued event lines and refreshes the table snapshot.
func (m *Model) sync() {
	m.mu.Lock()
	lines := m.pending
	m.pending = nil
	m.mu.Unlock()

	m.gameLog = append(m.gameLog, lines...)
	m.state = m.table.View(m.seat)
	m.refreshLog()
}

func (m *Model) addLine(kind lineKind, text string) {
	m.gameLog = append(m.gameLog, logLine{kind: kind, text: text})
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(m.renderLogPane())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the plain text of every log line.
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	for i, l := range m.gameLog {
		out[i] = l.text
	}
	return out
}

// State returns the snapshot the model last rendered.
func (m *Model) State() game.RoundState {
	return m.state
}

func (m *Model) handInProgress() bool {
	return m.state.Status == game.Playing
}

func (m *Model) humansTurn() bool {
	s := m.state
	return s.Status == game.Playing && !s.Showdown && s.CurrentPlayer == m.seat
}
