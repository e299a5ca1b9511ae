package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/deck"
)

const (
	accentColor = lipgloss.Color("#04B575")
	mutedColor  = lipgloss.Color("#626262")
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	HandInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true)

	HiddenCardStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	StreetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)
)

// formatCards renders cards in brackets, red suits in red.
func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			parts[i] = RedCardStyle.Render(card.String())
		} else {
			parts[i] = BlackCardStyle.Render(card.String())
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// hiddenCards renders n face-down cards.
func hiddenCards(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "??"
	}
	return HiddenCardStyle.Render("[" + strings.Join(parts, " ") + "]")
}
