// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

// Replies.
const (
	msgInternalError      = "Что‑то пошло не так. Попробуйте позже."
	msgStaleButton        = "Эта кнопка устарела."
	msgWaitFeedback       = "Подождите, ответ проверяется."
	msgQuizNotFound       = "Такого этапа нет."
	msgNoActiveQuiz       = "Сейчас нет открытого этапа. Выберите его в меню: /menu"
	msgUnrecognizedAnswer = "Не удалось распознать ответ. Нажмите кнопку под вопросом или отправьте номер варианта:"
	msgHelp               = "Команды:\n" +
		"/menu — список этапов расследования\n" +
		"/progress — ход расследования\n" +
		"/restart — начать заново\n" +
		"/help — помощь\n\n" +
		"Отвечайте кнопками под вопросом или отправьте номер варианта сообщением."
)

// Screen headings.
const (
	headingProgress     = "📊 Ход расследования"
	headingStageDone    = "🎉 Этап завершён"
	labelQuestion       = "Вопрос"
	prefixCorrect       = "✅ "
	prefixWrong         = "❌ "
	prefixHint          = "💡 "
	prefixCompleted     = "✅ "
	prefixNotCompleted  = "⬜ "
	prefixStart         = "▶️ "
	prefixRetake        = "🔁 "
	prefixCongratsTitle = "🏆 "
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds welcome message safely for MarkdownV2.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("🏛 " + service.ArchiveTitle))
	sb.WriteString("\n\n")
	sb.WriteString(md(service.ArchiveIntro))
	sb.WriteString("\n\n")
	sb.WriteString(md(msgHelp))

	return sb.String()
}

// unrecognizedAnswerText lists the options the user can type.
func unrecognizedAnswerText(options []string) string {
	var sb strings.Builder
	sb.WriteString(msgUnrecognizedAnswer)
	for i, option := range options {
		sb.WriteString("\n")
		sb.WriteString(optionLabel(i, option))
	}
	return sb.String()
}
