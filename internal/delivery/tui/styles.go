package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Cursor   lipgloss.Style
	Idle     lipgloss.Style
	Correct  lipgloss.Style
	Wrong    lipgloss.Style
	Hint     lipgloss.Style
	Done     lipgloss.Style
	Panel    lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			Title: plain, Subtitle: plain, Text: plain, Cursor: plain, Idle: plain,
			Correct: plain, Wrong: plain, Hint: plain, Done: plain,
			Panel: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		}
	}

	gold := lipgloss.Color("178")
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(gold),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(gold),
		Idle:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Correct:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("71")),
		Wrong:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167")),
		Hint:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("180")),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(gold).Padding(0, 1),
	}
}
