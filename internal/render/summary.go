package render

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	summaryBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryTitle = lipgloss.NewStyle().Bold(true)
	summaryKey   = lipgloss.NewStyle().Faint(true)
)

// Field is one labelled line of a summary box.
type Field struct {
	Label string
	Value string
}

// Summary renders the end-of-run report as a bordered box.
func Summary(title string, fields ...Field) string {
	lines := []string{summaryTitle.Render(title)}
	for _, f := range fields {
		lines = append(lines, summaryKey.Render(f.Label+":")+" "+f.Value)
	}
	return summaryBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
