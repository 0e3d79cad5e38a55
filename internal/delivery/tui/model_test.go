package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz/quiztest"
	"github.com/aliskhannn/tiara-archive-bot/internal/repository"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

func newTestModel(t *testing.T) (Model, *service.Session, *quiztest.Scheduler) {
	t.Helper()
	repo, err := repository.NewQuizRepositoryFromQuizzes([]entities.Quiz{
		{
			Title:    "Пустая витрина",
			Subtitle: "Осмотр",
			Questions: []entities.Question{
				{ID: 1, Text: "Витрина разбита?", Options: []string{"Нет", "Да"}, CorrectAnswer: entities.IntPtr(0), Hints: []string{"", "Осколков нет"}},
			},
		},
		{
			Title:     "Журнал посещений",
			Questions: []entities.Question{{ID: 1, Text: "Кто пришёл последним?", Options: []string{"Куратор", "Охранник", "Реставратор"}, CorrectAnswer: entities.IntPtr(2)}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sched := quiztest.NewScheduler()
	session := service.NewSession(repo, service.AttemptSettings{Scheduler: sched}, nil)
	return NewModel(session, Options{NoColor: true}), session, sched
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMenuNavigation(t *testing.T) {
	m, session, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, service.ArchiveTitle) || !strings.Contains(view, "1. Пустая витрина") {
		t.Fatalf("unexpected menu:\n%s", view)
	}

	m = press(t, m, keyDown, keyDown, keyUp, keyDown, keyEnter)
	if session.View() != service.ViewQuiz || session.CurrentQuiz() != 1 {
		t.Fatalf("expected second stage to open, got %s %d", session.View(), session.CurrentQuiz())
	}
	if m.cursor != 0 {
		t.Fatalf("cursor must reset on a new screen, got %d", m.cursor)
	}
	if !strings.Contains(m.View(), "Кто пришёл последним?") {
		t.Fatalf("expected question screen:\n%s", m.View())
	}

	m = press(t, m, keyEsc)
	if session.View() != service.ViewMenu || session.Attempt() != nil {
		t.Fatalf("esc must return to the menu")
	}

	press(t, m, runeKey('1'))
	if session.View() != service.ViewQuiz || session.CurrentQuiz() != 0 {
		t.Fatalf("digit must open the stage")
	}
}

func TestAnswerFeedbackAndCompletion(t *testing.T) {
	m, session, sched := newTestModel(t)
	m = press(t, m, keyEnter)

	// Wrong pick via the cursor.
	m = press(t, m, keyDown, keyEnter)
	view := m.View()
	if !strings.Contains(view, "✗ 2. Да") || !strings.Contains(view, "Осколков нет") {
		t.Fatalf("expected wrong feedback:\n%s", view)
	}
	if strings.Contains(view, "✓") {
		t.Fatalf("the right answer must not be revealed:\n%s", view)
	}

	sched.Advance(quiz.DefaultIncorrectDelay)
	m = press(t, m)
	next, _ := m.Update(ChangedMsg{})
	m = next.(Model)
	if strings.Contains(m.View(), "✗") {
		t.Fatalf("feedback must clear after the delay:\n%s", m.View())
	}

	m = press(t, m, runeKey('1'))
	if !strings.Contains(m.View(), "✓ 1. Нет") {
		t.Fatalf("expected correct mark:\n%s", m.View())
	}
	sched.Advance(quiz.DefaultCorrectDelay)

	if !session.Completed()[0] {
		t.Fatalf("stage must be completed")
	}
	if !strings.Contains(m.View(), "Этап завершён") {
		t.Fatalf("expected completion panel:\n%s", m.View())
	}

	m = press(t, m, keyEnter)
	if !strings.Contains(m.View(), "✓ 1. Пустая витрина") {
		t.Fatalf("expected completed mark in menu:\n%s", m.View())
	}
}

func TestRestartFromCongratulations(t *testing.T) {
	m, session, _ := newTestModel(t)
	for i := 0; i < 2; i++ {
		if _, err := session.StartQuiz(i); err != nil {
			t.Fatal(err)
		}
		session.OnQuizComplete()
	}

	if !strings.Contains(m.View(), service.CongratsTitle) {
		t.Fatalf("expected congratulations:\n%s", m.View())
	}

	m = press(t, m, runeKey('r'))
	if session.AllCompleted() || strings.Contains(m.View(), service.CongratsTitle) {
		t.Fatalf("restart must clear progress")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(1, 4, 8); got != "██░░░░░░" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := progressBar(3, 0, 3); got != "░░░" {
		t.Fatalf("unexpected bar %q", got)
	}
}
