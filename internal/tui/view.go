package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/game"
)

const sidebarMinWidth = 30

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := paneStyle.
		BorderForeground(accentColor).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), sidebarMinWidth)
	paneHeight := max(m.height-actionHeight-4, 1)
	sidebarPane := paneStyle.
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(m.renderLogPane())

	// on first proper sizing, start at the newest entries
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := paneStyle.Width(logWidth).Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(accentColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderLogPane() string {
	lines := make([]string, len(m.gameLog))
	for i, l := range m.gameLog {
		lines[i] = l.render()
	}
	return strings.Join(lines, "\n")
}

// renderSidebarPane shows the table, the players and session statistics.
func (m *Model) renderSidebarPane() string {
	var b strings.Builder
	s := m.state

	if s.HandNumber > 0 {
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Hand #%d · %s", s.HandNumber, s.Phase)))
		b.WriteString("\n")
	}
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: $%d", s.Pot)))
	if s.CurrentBet > 0 && s.Status == game.Playing {
		b.WriteString(" | ")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Bet: $%d", s.CurrentBet)))
	}
	b.WriteString("\n")
	if len(s.Community) > 0 {
		b.WriteString("Board: " + formatCards(s.Community) + "\n")
	}
	b.WriteString("\n")

	players := s.Players
	if len(players) == 0 {
		players = m.table.Players()
	}
	b.WriteString(InfoStyle.Render("Players:"))
	b.WriteString("\n")
	for i, p := range players {
		b.WriteString(m.renderPlayer(i, p))
		b.WriteString("\n")
	}

	sum := m.tracker.Summary()
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Session:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Hands: %d  Won: %d\n", sum.HandsPlayed, sum.HandsWon)
	fmt.Fprintf(&b, "  Winnings: %+d\n", sum.TotalWinnings)
	fmt.Fprintf(&b, "  Biggest pot: $%d", sum.BiggestPot)
	return b.String()
}

func (m *Model) renderPlayer(seat int, p game.Player) string {
	s := m.state
	marker := "  "
	if s.Status == game.Playing && !s.Showdown && s.CurrentPlayer == seat {
		marker = ActionsStyle.Render("▶ ")
	}

	line := fmt.Sprintf("%s%s: $%d", marker, p.Name, p.Chips)
	if p.CurrentBet > 0 && s.Status == game.Playing {
		line += fmt.Sprintf(" (bet $%d)", p.CurrentBet)
	}

	switch {
	case s.Status != game.Playing && s.HandNumber == 0:
	case p.IsFolded && len(p.Hand) == 0 && p.TotalBet == 0 && p.Chips == 0:
		line += " " + InfoStyle.Render("out")
	case p.IsFolded:
		line += " " + InfoStyle.Render("folded")
	case len(p.Hand) > 0:
		line += " " + formatCards(p.Hand)
	default:
		line += " " + hiddenCards(2)
	}
	if s.Status == game.Finished && s.IsWinner(seat) {
		line += " " + SuccessStyle.Render("winner")
	}
	return line
}

// renderActionPane shows the hand, the available actions and the input.
func (m *Model) renderActionPane() string {
	var b strings.Builder
	s := m.state

	switch {
	case m.humansTurn():
		p := s.Players[m.seat]
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Hand: %s  Pot: $%d  Stack: $%d",
			formatCards(p.Hand), s.Pot, p.Chips)))
		b.WriteString("\n")
		b.WriteString(m.renderAvailableActions())
		b.WriteString("\n")
		m.actionInput.Placeholder = "Enter your action (fold, check, call, raise 20, allin)"
	case s.Status == game.Playing:
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Waiting for %s...", m.name(s.CurrentPlayer))))
		b.WriteString("\n")
		m.actionInput.Placeholder = "Bots are thinking"
	case m.sessionOver:
		b.WriteString(HandInfoStyle.Render("Session over"))
		b.WriteString("\n")
		m.actionInput.Placeholder = "Type reset to play again, quit to exit"
	default:
		b.WriteString(HandInfoStyle.Render("Between hands"))
		b.WriteString("\n")
		m.actionInput.Placeholder = "Enter to deal, 'quit' to exit"
	}

	b.WriteString(m.actionInput.View())
	b.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	b.WriteString(InfoStyle.Render(help))
	return b.String()
}

// renderAvailableActions lists what the human may do right now.
func (m *Model) renderAvailableActions() string {
	s := m.state
	p := s.Players[m.seat]
	toCall := s.AmountToCall(m.seat)

	actions := []string{ErrorStyle.Render("[fold]")}
	if toCall == 0 {
		actions = append(actions, SuccessStyle.Render("[check]"))
	} else {
		actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[call $%d]", min(toCall, p.Chips))))
	}
	if p.Chips > toCall {
		actions = append(actions, WarningStyle.Render("[raise N]"))
	}
	actions = append(actions, WarningStyle.Render(fmt.Sprintf("[allin $%d]", p.Chips)))
	return ActionsStyle.Render("Actions: " + strings.Join(actions, " "))
}
