package telegram

import (
	"context"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

func (h *Handler) startHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s := h.sessions.GetOrCreate(chatID)
		if err := h.send(newMessage(chatID, welcomeMarkdownV2())); err != nil {
			return err
		}
		s.ShowMenu()
		return h.render(chatID, s, true)
	}
}

func (h *Handler) menuHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s := h.sessions.GetOrCreate(chatID)
		s.ShowMenu()
		return h.render(chatID, s, true)
	}
}

func (h *Handler) restartHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s := h.sessions.GetOrCreate(chatID)
		s.Restart()
		return h.render(chatID, s, true)
	}
}

func (h *Handler) progressHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s := h.sessions.GetOrCreate(chatID)
		return h.send(newMessage(chatID, renderProgress(s.Menu())))
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgHelp))
	}
}

// answerTextHandler lets the user type an answer instead of pressing a button.
func (h *Handler) answerTextHandler(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s := h.sessions.GetOrCreate(chatID)

		a := s.Attempt()
		if a == nil || s.View() != service.ViewQuiz {
			return service.ErrNoActiveAttempt
		}

		v := a.View()
		if v.Locked() {
			return h.send(newPlainMessage(chatID, msgWaitFeedback))
		}

		option, ok := h.matcher.Match(text, v.Question.Options)
		if !ok {
			return h.send(newPlainMessage(chatID, unrecognizedAnswerText(v.Question.Options)))
		}

		// The session listener redraws the live message.
		return s.SelectAnswer(option)
	}
}
