package quiz

import (
	"github.com/google/uuid"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
)

// Mark is how an option should be drawn.
type Mark int

const (
	MarkIdle Mark = iota
	MarkCorrect
	MarkWrong
)

func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkWrong:
		return "wrong"
	default:
		return "idle"
	}
}

// View is a consistent snapshot of an attempt for renderers.
type View struct {
	ID              uuid.UUID
	Title           string
	Subtitle        string
	State           State
	Current         int // zero-based
	Total           int
	Question        entities.Question
	Answered        bool
	Selected        int // -1 when nothing is recorded
	FeedbackVisible bool
	Verdict         Verdict
	Completed       bool
}

// View captures the attempt state under a single lock.
func (a *Attempt) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	qi := a.current
	return View{
		ID:              a.id,
		Title:           a.quiz.Title,
		Subtitle:        a.quiz.Subtitle,
		State:           a.stateLocked(),
		Current:         qi,
		Total:           len(a.quiz.Questions),
		Question:        a.quiz.Questions[qi].Clone(),
		Answered:        a.answered[qi],
		Selected:        a.selected[qi],
		FeedbackVisible: a.feedback[qi],
		Verdict:         a.verdicts[qi],
		Completed:       a.completed,
	}
}

// Mark returns the drawing state of option i. Only the picked option is
// highlighted, so a wrong pick doesn't give the right answer away.
func (v View) Mark(i int) Mark {
	if !v.FeedbackVisible || !v.Answered || i != v.Selected {
		return MarkIdle
	}
	if v.Verdict.Correct {
		return MarkCorrect
	}
	return MarkWrong
}

// Locked reports whether option buttons should be disabled.
func (v View) Locked() bool {
	return v.Answered || v.Completed || v.State == StateClosed
}

// IsLast reports whether the view is on the final question.
func (v View) IsLast() bool {
	return v.Current == v.Total-1
}
