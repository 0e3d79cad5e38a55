package web

import (
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

type menuResponse struct {
	Title           string             `json:"title"`
	Intro           string             `json:"intro"`
	Entries         []menuEntryPayload `json:"entries"`
	AllCompleted    bool               `json:"allCompleted"`
	Congratulations *messagePayload    `json:"congratulations,omitempty"`
}

type menuEntryPayload struct {
	Index          int    `json:"index"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Questions      int    `json:"questions"`
	QuestionsLabel string `json:"questionsLabel"`
	Completed      bool   `json:"completed"`
	Action         string `json:"action"`
}

type messagePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type stateResponse struct {
	View          string          `json:"view"`
	CurrentQuiz   int             `json:"currentQuiz"`
	AllCompleted  bool            `json:"allCompleted"`
	Completed     []bool          `json:"completed"`
	Attempt       *attemptPayload `json:"attempt,omitempty"`
	LastCompleted *messagePayload `json:"lastCompleted,omitempty"`
}

type attemptPayload struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	State    string           `json:"state"`
	Current  int              `json:"current"` // zero-based
	Total    int              `json:"total"`
	Question string           `json:"question"`
	Options  []optionPayload  `json:"options"`
	Locked   bool             `json:"locked"`
	Feedback *feedbackPayload `json:"feedback,omitempty"`
}

type optionPayload struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	State string `json:"state"` // idle, correct or wrong
}

type feedbackPayload struct {
	Correct bool   `json:"correct"`
	Text    string `json:"text"`
	Hint    string `json:"hint,omitempty"`
}

type answerRequest struct {
	Option *int `json:"option" binding:"required"`
}

func newMenuResponse(menu service.MenuView) menuResponse {
	resp := menuResponse{
		Title:        service.ArchiveTitle,
		Intro:        service.ArchiveIntro,
		Entries:      make([]menuEntryPayload, 0, len(menu.Entries)),
		AllCompleted: menu.AllCompleted,
	}
	for _, e := range menu.Entries {
		resp.Entries = append(resp.Entries, menuEntryPayload{
			Index:          e.Index,
			Title:          e.Title,
			Subtitle:       e.Subtitle,
			Questions:      e.QuestionCount,
			QuestionsLabel: e.QuestionsLabel,
			Completed:      e.Completed,
			Action:         e.Action,
		})
	}
	if menu.AllCompleted {
		resp.Congratulations = &messagePayload{Title: service.CongratsTitle, Text: service.CongratsText}
	}
	return resp
}

func newStateResponse(s *service.Session) stateResponse {
	resp := stateResponse{
		View:         s.View().String(),
		CurrentQuiz:  s.CurrentQuiz(),
		AllCompleted: s.AllCompleted(),
		Completed:    s.Completed(),
	}
	if a := s.Attempt(); a != nil && s.View() == service.ViewQuiz {
		p := newAttemptPayload(a.View())
		resp.Attempt = &p
	}
	if q, text, ok := s.LastCompleted(); ok {
		resp.LastCompleted = &messagePayload{Title: q.Title, Text: text}
	}
	return resp
}

func newAttemptPayload(v quiz.View) attemptPayload {
	p := attemptPayload{
		ID:       v.ID.String(),
		Title:    v.Title,
		Subtitle: v.Subtitle,
		State:    v.State.String(),
		Current:  v.Current,
		Total:    v.Total,
		Question: v.Question.Text,
		Options:  make([]optionPayload, 0, len(v.Question.Options)),
		Locked:   v.Locked(),
	}
	for i, text := range v.Question.Options {
		p.Options = append(p.Options, optionPayload{Index: i, Text: text, State: v.Mark(i).String()})
	}
	if v.FeedbackVisible {
		p.Feedback = &feedbackPayload{
			Correct: v.Verdict.Correct,
			Text:    v.Verdict.Text,
			Hint:    v.Verdict.Hint,
		}
	}
	return p
}
