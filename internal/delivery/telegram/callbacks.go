package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	s := h.sessions.GetOrCreate(chatID)

	// Buttons are pressed on the message the user looks at, so that one is live now.
	h.sessions.SetMessageID(chatID, cb.Message.MessageID)

	cd := decodeCallback(cb.Data)

	var toast string
	switch cd.Action {
	case actionMenu, actionNext:
		s.ShowMenu()
		toast = h.redraw(chatID, s)

	case actionRestart:
		s.Restart()
		toast = h.redraw(chatID, s)

	case actionQuiz:
		toast = h.handleQuizStartCallback(chatID, s, cd)

	case actionAnswer:
		toast = h.handleAnswerCallback(chatID, s, cd)

	default:
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
		toast = msgStaleButton
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

func (h *Handler) handleQuizStartCallback(chatID int64, s *service.Session, cd callbackData) string {
	index, err := parseQuizStart(cd)
	if err != nil {
		h.logger.Warn("invalid quiz callback", zap.Error(err))
		return msgStaleButton
	}

	if _, err := s.StartQuiz(index); err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			return msgQuizNotFound
		}
		h.logger.Error("failed to start quiz",
			zap.Int64("chat_id", chatID),
			zap.Int("quiz_index", index),
			zap.Error(err),
		)
		return msgInternalError
	}

	return h.redraw(chatID, s)
}

func (h *Handler) handleAnswerCallback(chatID int64, s *service.Session, cd callbackData) string {
	answer, err := parseAnswer(cd)
	if err != nil {
		h.logger.Warn("invalid answer callback", zap.Error(err))
		return msgStaleButton
	}

	a := s.Attempt()
	if a == nil || s.View() != service.ViewQuiz || a.ShortID() != answer.Attempt {
		return msgStaleButton
	}

	v := a.View()
	if v.Current != answer.Question {
		return msgStaleButton
	}
	if v.Locked() {
		return msgWaitFeedback
	}

	// The session listener redraws the live message.
	if err := s.SelectAnswer(answer.Option); err != nil {
		return msgStaleButton
	}
	return ""
}

// redraw updates the live message after a button press and returns the
// toast to show. Pressing a button that leaves the screen as it was is fine.
func (h *Handler) redraw(chatID int64, s *service.Session) string {
	if err := h.render(chatID, s, false); err != nil && !isNotModified(err) {
		h.logger.Error("failed to redraw live message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return msgInternalError
	}
	return ""
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
