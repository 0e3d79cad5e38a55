package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

// buildMenuKeyboard builds one button per stage plus restart once everything is done.
func buildMenuKeyboard(menu service.MenuView) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu.Entries)+1)
	for _, e := range menu.Entries {
		prefix := prefixStart
		if e.Completed {
			prefix = prefixRetake
		}
		label := prefix + e.Title + " — " + e.Action
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizStartCallback(e.Index)),
		))
	}

	if menu.AllCompleted {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 "+service.ActionRestart, buildRestartCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds the option buttons for the current question.
// Only the picked option carries a mark while feedback is visible.
func buildQuestionKeyboard(v quiz.View) tgbotapi.InlineKeyboardMarkup {
	short := quiz.ShortID(v.ID)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range v.Question.Options {
		label := optionLabel(i, option)
		switch v.Mark(i) {
		case quiz.MarkCorrect:
			label = prefixCorrect + label
		case quiz.MarkWrong:
			label = prefixWrong + label
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(short, v.Current, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(service.ActionBackToMenu, buildMenuCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildStageDoneKeyboard builds the "next" button of the completion panel.
func buildStageDoneKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(service.ActionNext+" →", buildNextCallback()),
		),
	)
}
