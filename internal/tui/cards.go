package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seenimoa/secfilings/internal/present"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#5B8DEF"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	cardLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6FCF97")).
			Underline(true)
)

// RenderCard draws one filing card.
func RenderCard(c present.Card, width int) string {
	lines := []string{
		cardTitleStyle.Render(c.Label),
		c.Subtitle,
		hintStyle.Render("Filed: " + c.FiledOn),
	}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	lines = append(lines, cardLinkStyle.Render(c.URL))
	return cardStyle.Width(max(40, width-2)).Render(strings.Join(lines, "\n"))
}

// RenderCards draws cards stacked vertically.
func RenderCards(cards []present.Card, width int) string {
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = RenderCard(c, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
