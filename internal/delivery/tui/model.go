// Package tui is a terminal client for the archive built on Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenQuiz
	screenStageDone
)

// ChangedMsg tells the model that the session changed behind its back,
// e.g. when feedback timed out.
type ChangedMsg struct{}

// Notifier returns a session listener that wakes the program up.
func Notifier(p *tea.Program) func() {
	return func() {
		// Send blocks while Update runs, and Update is where most changes start.
		go p.Send(ChangedMsg{})
	}
}

// Options configures the terminal client.
type Options struct {
	NoColor bool
}

// Model renders the menu and quiz screens of one session.
type Model struct {
	session *service.Session
	keys    keyMap
	help    help.Model
	styles  styles

	cursor int
	screen string // identifies what the cursor points into
}

// NewModel constructs a model for the session.
func NewModel(session *service.Session, opts Options) Model {
	m := Model{
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  newStyles(opts.NoColor),
	}
	return m.syncCursor()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and session changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
	case tea.KeyMsg:
		if key.Matches(typed, m.keys.Quit) {
			return m, tea.Quit
		}
		m = m.handleKey(typed)
	case ChangedMsg:
	}
	return m.syncCursor(), nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	kind, _ := m.currentScreen()
	switch kind {
	case screenQuiz:
		return m.handleQuizKey(msg)
	case screenStageDone:
		if key.Matches(msg, m.keys.Choose, m.keys.Back) {
			m.session.ShowMenu()
		}
		return m
	default:
		return m.handleMenuKey(msg)
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) Model {
	menu := m.session.Menu()
	items := len(menu.Entries)
	if menu.AllCompleted {
		items++ // restart row
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, items-1)
	case key.Matches(msg, m.keys.Choose):
		if m.cursor == len(menu.Entries) && menu.AllCompleted {
			m.session.Restart()
			return m
		}
		_, _ = m.session.StartQuiz(m.cursor)
	case key.Matches(msg, m.keys.Pick):
		_, _ = m.session.StartQuiz(digit(msg) - 1)
	case key.Matches(msg, m.keys.Restart):
		if menu.AllCompleted {
			m.session.Restart()
		}
	}
	return m
}

func (m Model) handleQuizKey(msg tea.KeyMsg) Model {
	a := m.session.Attempt()
	if a == nil {
		return m
	}
	options := len(a.CurrentQuestion().Options)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.session.ShowMenu()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, options-1)
	case key.Matches(msg, m.keys.Choose):
		_ = m.session.SelectAnswer(m.cursor)
	case key.Matches(msg, m.keys.Pick):
		_ = m.session.SelectAnswer(digit(msg) - 1)
	}
	return m
}

// syncCursor resets the cursor whenever the user lands on a new screen or question.
func (m Model) syncCursor() Model {
	_, id := m.currentScreen()
	if id != m.screen {
		m.screen = id
		m.cursor = 0
	}
	return m
}

func (m Model) currentScreen() (screenKind, string) {
	if m.session.View() == service.ViewQuiz {
		if a := m.session.Attempt(); a != nil {
			cur, _ := a.Progress()
			return screenQuiz, fmt.Sprintf("quiz:%s:%d", a.ShortID(), cur)
		}
	}
	if _, _, ok := m.session.LastCompleted(); ok {
		return screenStageDone, "done"
	}
	return screenMenu, "menu"
}

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch kind, _ := m.currentScreen(); kind {
	case screenQuiz:
		// The attempt may finish on a timer between the two reads.
		if a := m.session.Attempt(); a != nil {
			body = m.renderQuiz(a.View())
		} else {
			body = m.renderMenu(m.session.Menu())
		}
	case screenStageDone:
		q, text, _ := m.session.LastCompleted()
		body = m.renderStageDone(q.Title, text)
	default:
		body = m.renderMenu(m.session.Menu())
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys))
}

func (m Model) renderMenu(menu service.MenuView) string {
	lines := []string{
		m.styles.Title.Render(service.ArchiveTitle),
		m.styles.Subtitle.Render(service.ArchiveIntro),
		"",
	}
	for i, e := range menu.Entries {
		mark := "  "
		if e.Completed {
			mark = m.styles.Done.Render("✓ ")
		}
		title := fmt.Sprintf("%d. %s", i+1, e.Title)
		line := m.cursorPrefix(i) + mark + m.styles.Text.Render(title) +
			m.styles.Idle.Render(" · "+e.QuestionsLabel+" · "+e.Action)
		lines = append(lines, line)
		if e.Subtitle != "" {
			lines = append(lines, "      "+m.styles.Subtitle.Render(e.Subtitle))
		}
	}

	if menu.AllCompleted {
		panel := m.styles.Panel.Render(
			m.styles.Title.Render(service.CongratsTitle) + "\n" + m.styles.Text.Render(service.CongratsText),
		)
		lines = append(lines, "", panel,
			m.cursorPrefix(len(menu.Entries))+m.styles.Text.Render(service.ActionRestart))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderQuiz(v quiz.View) string {
	lines := []string{
		m.styles.Title.Render(v.Title),
		m.styles.Subtitle.Render(v.Subtitle),
		"",
		m.styles.Idle.Render(fmt.Sprintf("Вопрос %d / %d %s", v.Current+1, v.Total, progressBar(v.Current+1, v.Total, 20))),
		"",
		m.styles.Text.Render(v.Question.Text),
		"",
	}

	for i, option := range v.Question.Options {
		label := fmt.Sprintf("%d. %s", i+1, option)
		switch v.Mark(i) {
		case quiz.MarkCorrect:
			label = m.styles.Correct.Render("✓ " + label)
		case quiz.MarkWrong:
			label = m.styles.Wrong.Render("✗ " + label)
		default:
			label = m.styles.Text.Render(label)
		}
		lines = append(lines, m.cursorPrefix(i)+label)
	}

	if v.FeedbackVisible {
		style := m.styles.Wrong
		if v.Verdict.Correct {
			style = m.styles.Correct
		}
		lines = append(lines, "", style.Render(v.Verdict.Text))
		if v.Verdict.Hint != "" {
			lines = append(lines, m.styles.Hint.Render(v.Verdict.Hint))
		}
	}

	lines = append(lines, "", m.styles.Idle.Render(service.ActionBackToMenu+" (esc)"))
	return strings.Join(lines, "\n")
}

func (m Model) renderStageDone(title, text string) string {
	content := m.styles.Title.Render("Этап завершён") + "\n" + m.styles.Text.Render(title)
	if text != "" {
		content += "\n\n" + m.styles.Text.Render(text)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Panel.Render(content),
		m.styles.Cursor.Render("› "+service.ActionNext+" (enter)"),
	)
}

func (m Model) cursorPrefix(i int) string {
	if i == m.cursor {
		return m.styles.Cursor.Render("› ")
	}
	return "  "
}

func progressBar(current, total, length int) string {
	if total <= 0 {
		return strings.Repeat("░", length)
	}
	filled := min(current*length/total, length)
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// digit returns the number typed for a 1-9 key press.
func digit(msg tea.KeyMsg) int {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0
	}
	return int(s[0] - '0')
}
