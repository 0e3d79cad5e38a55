package service

import "fmt"

// Texts shared by every front end.
const (
	ArchiveTitle     = "Архив Тиары Афродиты"
	ArchiveIntro     = "Добро пожаловать в таинственные архивы музея. Разгадайте загадку исчезновения бесценной тиары Афродиты, изучив улики и ответив на вопросы следствия."
	CongratsTitle    = "Поздравляем!"
	CongratsText     = "Вы успешно разгадали тайну тиары Афродиты и завершили все этапы расследования."
	ActionStart      = "Начать"
	ActionRetake     = "Пройти снова"
	ActionRestart    = "Начать заново"
	ActionNext       = "Далее"
	ActionBackToMenu = "← Вернуться к заданиям"
)

// MenuEntry is one quiz card in the menu.
type MenuEntry struct {
	Index          int
	Title          string
	Subtitle       string
	QuestionCount  int
	QuestionsLabel string
	Completed      bool
	Action         string
}

// MenuView is everything needed to draw the menu.
type MenuView struct {
	Entries      []MenuEntry
	AllCompleted bool
}

// Menu builds the menu for the current completion state.
func (s *Session) Menu() MenuView {
	quizzes := s.store.GetAll()
	completed := s.Completed()

	view := MenuView{
		Entries:      make([]MenuEntry, 0, len(quizzes)),
		AllCompleted: allTrue(completed),
	}
	for i, q := range quizzes {
		done := i < len(completed) && completed[i]
		action := ActionStart
		if done {
			action = ActionRetake
		}
		view.Entries = append(view.Entries, MenuEntry{
			Index:          i,
			Title:          q.Title,
			Subtitle:       q.Subtitle,
			QuestionCount:  q.QuestionCount(),
			QuestionsLabel: QuestionsLabel(q.QuestionCount()),
			Completed:      done,
			Action:         action,
		})
	}
	return view
}

// QuestionsLabel renders "N вопрос/вопроса/вопросов".
func QuestionsLabel(n int) string {
	return fmt.Sprintf("%d %s", n, pluralRU(n, "вопрос", "вопроса", "вопросов"))
}

func pluralRU(n int, one, few, many string) string {
	n %= 100
	if n >= 11 && n <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}
