package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stickynotes/stickynotes/internal/client"
)

const completedDateLayout = "Jan 2, 2006"

// columns returns how many cards fit across width.
func columns(width int) int {
	n := width / (cardWidth + 2)
	if n < 1 {
		return 1
	}
	return n
}

func renderCard(note client.Note, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if note.Color != "" {
		style = style.Background(lipgloss.Color(note.Color))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(note.Title, cardWidth-2)) + "\n")
	if note.IsCompleted && note.CompletedAt != nil {
		b.WriteString(hintStyle.Render("Completed "+note.CompletedAt.Local().Format(completedDateLayout)) + "\n")
	}
	b.WriteString(note.Content)
	if note.IsCompleted && note.CompletionFeedback != "" {
		b.WriteString("\n\n" + labelStyle.Render("Feedback: ") + note.CompletionFeedback)
	}
	return style.MaxHeight(cardHeight + 2).Render(b.String())
}

// renderGrid lays the notes out row by row.
func renderGrid(notes []client.Note, selected, width int) string {
	cols := columns(width)
	rows := make([]string, 0, (len(notes)+cols-1)/cols)
	for start := 0; start < len(notes); start += cols {
		end := min(start+cols, len(notes))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(notes[i], i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
