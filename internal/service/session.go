package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/repository"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrNoActiveAttempt = errors.New("no active quiz attempt")
)

// View is what the user currently looks at.
type View int

const (
	ViewMenu View = iota
	ViewQuiz
)

func (v View) String() string {
	if v == ViewQuiz {
		return "quiz"
	}
	return "menu"
}

// AttemptSettings configures attempts started by a session.
type AttemptSettings struct {
	Scheduler      quiz.Scheduler
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
}

type finishedStage struct {
	index int
	text  string
}

// Session owns the completion flags, the active quiz and the menu/quiz toggle
// for one player. The running attempt is owned by the session and torn down
// before a new one is created.
type Session struct {
	store    QuizStore
	settings AttemptSettings
	logger   *zap.Logger

	mu        sync.Mutex
	completed []bool
	current   int
	view      View
	attempt   *quiz.Attempt
	last      *finishedStage
	listener  func()
}

// NewSession creates a session with every quiz incomplete and the menu shown.
func NewSession(store QuizStore, settings AttemptSettings, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:     store,
		settings:  settings,
		logger:    logger,
		completed: make([]bool, store.Count()),
		view:      ViewMenu,
	}
}

// SetListener registers fn to be called after every state change that
// happens outside a direct call, such as timer-driven transitions.
func (s *Session) SetListener(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

// StartQuiz tears down the current attempt and starts the quiz at index.
func (s *Session) StartQuiz(index int) (*quiz.Attempt, error) {
	q, err := s.store.GetByIndex(index)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz %d: %w", index, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()

	var a *quiz.Attempt
	a, err = quiz.NewAttempt(q, quiz.Options{
		Scheduler:      s.settings.Scheduler,
		CorrectDelay:   s.settings.CorrectDelay,
		IncorrectDelay: s.settings.IncorrectDelay,
		OnChange:       s.notify,
		OnComplete:     func() { s.finishAttempt(a) },
	})
	if err != nil {
		return nil, fmt.Errorf("start quiz %d: %w", index, err)
	}

	s.attempt = a
	s.current = index
	s.view = ViewQuiz
	s.last = nil

	s.logger.Debug("quiz started",
		zap.Int("quiz_index", index),
		zap.String("attempt_id", a.ID().String()),
	)

	return a, nil
}

// SelectAnswer forwards the choice to the running attempt.
func (s *Session) SelectAnswer(option int) error {
	s.mu.Lock()
	a := s.attempt
	view := s.view
	s.mu.Unlock()

	if a == nil || view != ViewQuiz {
		return ErrNoActiveAttempt
	}
	a.SelectAnswer(option)
	return nil
}

// finishAttempt handles the attempt's completion signal. Signals from an
// attempt that is no longer the session's own are dropped.
func (s *Session) finishAttempt(a *quiz.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a == nil || s.attempt != a {
		s.logger.Debug("ignoring completion of a stale attempt")
		return
	}

	s.last = &finishedStage{index: s.current, text: a.FinalText()}
	s.markCompletedLocked()
	s.teardownLocked()

	s.logger.Info("quiz completed",
		zap.Int("quiz_index", s.current),
		zap.String("attempt_id", a.ID().String()),
	)
}

// OnQuizComplete marks the active quiz completed and returns to the menu.
// The running attempt is torn down, so its pending timers never fire.
// Calling it again for the same quiz changes nothing.
func (s *Session) OnQuizComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markCompletedLocked()
	s.teardownLocked()
}

func (s *Session) markCompletedLocked() {
	if s.current >= 0 && s.current < len(s.completed) {
		s.completed[s.current] = true
	}
	s.view = ViewMenu
}

// ShowMenu abandons the running attempt and returns to the menu. It also
// dismisses the panel of the last finished stage.
func (s *Session) ShowMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = ViewMenu
	s.last = nil
}

// Restart clears every completion flag and returns to the first quiz in the menu.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()
	for i := range s.completed {
		s.completed[i] = false
	}
	s.current = 0
	s.view = ViewMenu
	s.last = nil
}

// Close tears down the running attempt and shows the menu.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = ViewMenu
}

// teardownLocked closes the running attempt. An attempt that already
// finished but whose completion signal has not reached the session yet
// still counts, since the signal will be dropped as stale.
func (s *Session) teardownLocked() {
	if s.attempt == nil {
		return
	}
	if s.attempt.Completed() && s.current >= 0 && s.current < len(s.completed) {
		s.completed[s.current] = true
	}
	s.attempt.Close()
	s.attempt = nil
}

// AllCompleted reports whether every quiz has been completed.
func (s *Session) AllCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return allTrue(s.completed)
}

// Completed returns a copy of the completion flags.
func (s *Session) Completed() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.completed...)
}

// CurrentQuiz returns the index of the active quiz.
func (s *Session) CurrentQuiz() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// View returns whether the menu or a quiz is shown.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Attempt returns the running attempt, or nil.
func (s *Session) Attempt() *quiz.Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// LastCompleted returns the most recently finished quiz and its closing text.
func (s *Session) LastCompleted() (entities.Quiz, string, bool) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		return entities.Quiz{}, "", false
	}
	q, err := s.store.GetByIndex(last.index)
	if err != nil {
		return entities.Quiz{}, "", false
	}
	return q, last.text, true
}

// Quizzes returns all quizzes in menu order.
func (s *Session) Quizzes() []entities.Quiz {
	return s.store.GetAll()
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.listener
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func allTrue(flags []bool) bool {
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
