package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

const notModified = "message is not modified"

// HandlerFunc handles a command or a typed message in a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns errors of fn into replies. Session errors get a
// message the player can act on, everything else is logged with the command
// name and answered with a generic apology.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if errors.Is(err, service.ErrNoActiveAttempt) {
			h.sendError(chatID, msgNoActiveQuiz)
			return nil
		}

		h.logger.Error("handle error",
			zap.String("command", command),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

// isNotModified reports whether the Bot API refused an edit because the
// message would stay the same.
func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, notModified)
	}
	return err != nil && strings.Contains(err.Error(), notModified)
}
