// Package quiz drives a single pass through a quiz: one active question at a
// time, transient feedback, auto-advance on a correct answer and retry on a
// wrong one.
package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
)

// Default feedback delays.
const (
	DefaultCorrectDelay   = 1500 * time.Millisecond
	DefaultIncorrectDelay = 2000 * time.Millisecond
)

var ErrNoQuestions = errors.New("quiz has no questions")

// State of an attempt.
type State int

const (
	StateAwaitingAnswer State = iota
	StateShowingFeedback
	StateCompleted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateShowingFeedback:
		return "showing_feedback"
	case StateCompleted:
		return "completed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options configures an attempt.
type Options struct {
	Scheduler      Scheduler     // nil means real timers
	CorrectDelay   time.Duration // pause before moving on after a correct answer
	IncorrectDelay time.Duration // pause before a wrong answer is cleared
	OnChange       func()        // called after every visible state change
	OnComplete     func()        // called once, when the last question is answered correctly
}

// Attempt is one run through a quiz.
// Timer callbacks arrive on their own goroutines, so all state is guarded by mu.
// Callbacks in Options are always invoked without mu held.
type Attempt struct {
	id   uuid.UUID
	quiz entities.Quiz
	opts Options

	mu        sync.Mutex
	current   int
	answered  []bool
	selected  []int
	feedback  []bool
	verdicts  []Verdict
	completed bool
	closed    bool

	timer   Timer
	pending uint64 // identity of the scheduled timer, 0 when none
	seq     uint64
}

// NewAttempt starts a fresh attempt at the first question.
func NewAttempt(q entities.Quiz, opts Options) (*Attempt, error) {
	n := len(q.Questions)
	if n == 0 {
		return nil, ErrNoQuestions
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.CorrectDelay <= 0 {
		opts.CorrectDelay = DefaultCorrectDelay
	}
	if opts.IncorrectDelay <= 0 {
		opts.IncorrectDelay = DefaultIncorrectDelay
	}

	selected := make([]int, n)
	for i := range selected {
		selected[i] = -1
	}

	return &Attempt{
		id:       uuid.New(),
		quiz:     q.Clone(),
		opts:     opts,
		answered: make([]bool, n),
		selected: selected,
		feedback: make([]bool, n),
		verdicts: make([]Verdict, n),
	}, nil
}

// ID identifies the attempt.
func (a *Attempt) ID() uuid.UUID {
	return a.id
}

// ShortID is a compact form of ID that fits into callback payloads.
func (a *Attempt) ShortID() string {
	return ShortID(a.id)
}

// ShortID returns the first eight hex characters of id.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// Quiz returns a copy of the quiz being played.
func (a *Attempt) Quiz() entities.Quiz {
	return a.quiz.Clone()
}

// CurrentQuestion returns the question the user is on.
func (a *Attempt) CurrentQuestion() entities.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quiz.Questions[a.current].Clone()
}

// Progress returns the zero-based current index and the question count.
func (a *Attempt) Progress() (current, total int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current, len(a.quiz.Questions)
}

// State returns the current state.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Attempt) stateLocked() State {
	switch {
	case a.closed:
		return StateClosed
	case a.completed:
		return StateCompleted
	case a.feedback[a.current]:
		return StateShowingFeedback
	default:
		return StateAwaitingAnswer
	}
}

// SelectAnswer records option for the current question and schedules the
// follow-up transition. It is ignored once the question already has an answer,
// after completion or teardown, and for option indexes outside the option list.
func (a *Attempt) SelectAnswer(option int) {
	a.mu.Lock()
	if a.closed || a.completed {
		a.mu.Unlock()
		return
	}
	qi := a.current
	if a.answered[qi] || !a.quiz.Questions[qi].HasOption(option) {
		a.mu.Unlock()
		return
	}

	verdict := Evaluate(a.quiz, qi, option)
	a.answered[qi] = true
	a.selected[qi] = option
	a.feedback[qi] = true
	a.verdicts[qi] = verdict

	a.seq++
	token := a.seq
	a.pending = token
	if verdict.Correct {
		a.timer = a.opts.Scheduler.AfterFunc(a.opts.CorrectDelay, func() { a.advance(token, qi) })
	} else {
		a.timer = a.opts.Scheduler.AfterFunc(a.opts.IncorrectDelay, func() { a.retry(token, qi) })
	}
	a.mu.Unlock()

	a.notifyChange()
}

// advance fires after a correct answer.
func (a *Attempt) advance(token uint64, qi int) {
	a.mu.Lock()
	if !a.ownsTimerLocked(token, qi) {
		a.mu.Unlock()
		return
	}
	a.pending, a.timer = 0, nil

	finished := false
	if qi+1 < len(a.quiz.Questions) {
		a.feedback[qi] = false
		a.current = qi + 1
	} else {
		a.completed = true
		finished = true
	}
	a.mu.Unlock()

	// Completion goes first so listeners redraw with the completion recorded.
	if finished && a.opts.OnComplete != nil {
		a.opts.OnComplete()
	}
	a.notifyChange()
}

// retry fires after a wrong answer and lets the user try the same question again.
func (a *Attempt) retry(token uint64, qi int) {
	a.mu.Lock()
	if !a.ownsTimerLocked(token, qi) {
		a.mu.Unlock()
		return
	}
	a.pending, a.timer = 0, nil

	a.feedback[qi] = false
	a.answered[qi] = false
	a.selected[qi] = -1
	a.verdicts[qi] = Verdict{}
	a.mu.Unlock()

	a.notifyChange()
}

func (a *Attempt) ownsTimerLocked(token uint64, qi int) bool {
	return !a.closed && !a.completed && a.pending == token && a.current == qi
}

// Close tears the attempt down: pending timers are stopped and any callback
// that still manages to run becomes a no-op. Close is idempotent.
func (a *Attempt) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.pending = 0
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// IsAnswered reports whether question qi has a recorded selection.
func (a *Attempt) IsAnswered(qi int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inRange(qi) && a.answered[qi]
}

// IsFeedbackVisible reports whether feedback for qi should be shown.
func (a *Attempt) IsFeedbackVisible(qi int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inRange(qi) && a.feedback[qi]
}

// IsCorrect reports whether the recorded selection for qi is correct.
func (a *Attempt) IsCorrect(qi int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inRange(qi) && a.answered[qi] && a.verdicts[qi].Correct
}

// Selected returns the recorded option for qi.
func (a *Attempt) Selected(qi int) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.inRange(qi) || !a.answered[qi] {
		return -1, false
	}
	return a.selected[qi], true
}

// Completed reports whether the last question was answered correctly.
func (a *Attempt) Completed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.completed
}

// FinalText is the feedback shown for the last question once completed.
func (a *Attempt) FinalText() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.completed {
		return ""
	}
	return a.verdicts[len(a.verdicts)-1].Text
}

func (a *Attempt) inRange(qi int) bool {
	return qi >= 0 && qi < len(a.quiz.Questions)
}

func (a *Attempt) notifyChange() {
	if a.opts.OnChange != nil {
		a.opts.OnChange()
	}
}
