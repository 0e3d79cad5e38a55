package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
	"github.com/aliskhannn/tiara-archive-bot/internal/storage"
)

// Handler serves the archive over the Telegram Bot API. Every chat plays its
// own session and sees it through one live message that is edited in place.
type Handler struct {
	bot         Bot
	logger      *zap.Logger
	quizzes     service.QuizStore
	settings    service.AttemptSettings
	matcher     OptionMatcher
	sessions    *storage.SessionStorage
	pollTimeout int

	locks sync.Map // chat id -> *sync.Mutex guarding the live message
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizzes service.QuizStore,
	settings service.AttemptSettings,
	matcher OptionMatcher,
	pollTimeout int,
) *Handler {
	h := &Handler{
		bot:         bot,
		logger:      logger,
		quizzes:     quizzes,
		settings:    settings,
		matcher:     matcher,
		pollTimeout: pollTimeout,
	}
	h.sessions = storage.NewSessionStorage(h.newSession)
	h.sessions.OnRemove(func(chatID int64) { h.locks.Delete(chatID) })
	return h
}

// Sessions exposes the chat sessions, e.g. for the idle sweeper.
func (h *Handler) Sessions() *storage.SessionStorage {
	return h.sessions
}

// RegisterCommands publishes the command list shown by Telegram clients.
func (h *Handler) RegisterCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Открыть архив"},
		{Command: "menu", Description: "Список этапов"},
		{Command: "progress", Description: "Ход расследования"},
		{Command: "restart", Description: "Начать заново"},
		{Command: "help", Description: "Помощь"},
	}
	_, err := h.bot.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.pollTimeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.sessions.CloseAll()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		command := update.Message.Command()
		switch command {
		case "start":
			_ = h.withErrorHandling(command, h.startHandler())(ctx, chatID)

		case "menu":
			_ = h.withErrorHandling(command, h.menuHandler())(ctx, chatID)

		case "progress":
			_ = h.withErrorHandling(command, h.progressHandler())(ctx, chatID)

		case "restart":
			_ = h.withErrorHandling(command, h.restartHandler())(ctx, chatID)

		default:
			_ = h.withErrorHandling(command, h.helpHandler())(ctx, chatID)
		}

		return
	}

	_ = h.withErrorHandling("answer", h.answerTextHandler(update.Message.Text))(ctx, chatID)
}

// newSession builds the session of a chat that is seen for the first time.
func (h *Handler) newSession(chatID int64) *service.Session {
	s := service.NewSession(h.quizzes, h.settings, h.logger.With(zap.Int64("chat_id", chatID)))
	s.SetListener(func() { h.refresh(chatID) })
	return s
}

// refresh redraws the live message after a change the chat did not trigger
// directly, such as feedback timing out.
func (h *Handler) refresh(chatID int64) {
	s, ok := h.sessions.Get(chatID)
	if !ok {
		return
	}
	if err := h.render(chatID, s, false); err != nil && !isNotModified(err) {
		h.logger.Error("failed to refresh live message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// render draws the session into the chat's live message. With fresh set, or
// when the chat has no live message yet, a new message becomes the live one.
func (h *Handler) render(chatID int64, s *service.Session, fresh bool) error {
	mu := h.chatLock(chatID)
	mu.Lock()
	defer mu.Unlock()

	scr := buildScreen(s)

	if msgID, ok := h.sessions.MessageID(chatID); ok && !fresh {
		edit := newEdit(chatID, msgID, scr.text)
		edit.ReplyMarkup = scr.keyboard
		if _, err := h.bot.Send(edit); err != nil {
			return fmt.Errorf("edit live message: %w", err)
		}
		return nil
	}

	msg := newMessage(chatID, scr.text)
	if scr.keyboard != nil {
		msg.ReplyMarkup = *scr.keyboard
	}
	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send live message: %w", err)
	}
	h.sessions.SetMessageID(chatID, sent.MessageID)
	return nil
}

func (h *Handler) chatLock(chatID int64) *sync.Mutex {
	mu, _ := h.locks.LoadOrStore(chatID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (h *Handler) sendError(chatID int64, text string) {
	if err := h.send(newPlainMessage(chatID, text)); err != nil {
		h.logger.Error("failed to send error reply",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
