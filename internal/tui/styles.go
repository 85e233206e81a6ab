package tui

import "github.com/charmbracelet/lipgloss"

const (
	cardWidth  = 30
	cardHeight = 8
)

var (
	accent = lipgloss.Color("#B45309")
	muted  = lipgloss.Color("#6B7280")
	ink    = lipgloss.Color("#1F2937")
	danger = lipgloss.Color("#B91C1C")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(accent)

	navStyle = lipgloss.NewStyle().Foreground(muted)

	hintStyle = lipgloss.NewStyle().Foreground(muted)

	errorStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ink)

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Height(cardHeight).
			Padding(0, 1).
			Foreground(ink).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB"))

	selectedCardStyle = cardStyle.
				BorderForeground(accent).
				Border(lipgloss.ThickBorder())

	modalStyle = lipgloss.NewStyle().
			Width(56).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent)

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(muted)
)

// swatch renders a color chip, framed when selected.
func swatch(color string, selected bool) string {
	chip := lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("    ")
	if selected {
		return "[" + chip + "]"
	}
	return " " + chip + " "
}
