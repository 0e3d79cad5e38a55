package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

const progressBarLength = 10

// screen is the content of the chat's live message.
type screen struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

// buildScreen picks what the live message should show for the session.
func buildScreen(s *service.Session) screen {
	if s.View() == service.ViewQuiz {
		if a := s.Attempt(); a != nil {
			return renderQuestion(a.View())
		}
	}
	if q, text, ok := s.LastCompleted(); ok {
		return renderStageDone(q.Title, text)
	}
	return renderMenu(s.Menu())
}

// renderMenu renders the list of stages.
func renderMenu(menu service.MenuView) screen {
	var sb strings.Builder

	sb.WriteString(bold("🏛 " + service.ArchiveTitle))
	sb.WriteString("\n\n")
	sb.WriteString(md(service.ArchiveIntro))

	for _, e := range menu.Entries {
		prefix := prefixNotCompleted
		if e.Completed {
			prefix = prefixCompleted
		}
		sb.WriteString("\n\n")
		sb.WriteString(md(prefix))
		sb.WriteString(bold(e.Title))
		sb.WriteString("\n")
		if e.Subtitle != "" {
			sb.WriteString(italic(e.Subtitle))
			sb.WriteString(md(" · "))
		}
		sb.WriteString(md(e.QuestionsLabel))
	}

	if menu.AllCompleted {
		sb.WriteString("\n\n")
		sb.WriteString(bold(prefixCongratsTitle + service.CongratsTitle))
		sb.WriteString("\n")
		sb.WriteString(md(service.CongratsText))
	}

	kb := buildMenuKeyboard(menu)
	return screen{text: sb.String(), keyboard: &kb}
}

// renderQuestion renders the current question with feedback, if any.
func renderQuestion(v quiz.View) screen {
	var sb strings.Builder

	sb.WriteString(bold(v.Title))
	if v.Subtitle != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(v.Subtitle))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%s %d / %d", labelQuestion, v.Current+1, v.Total)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(v.Current+1, v.Total, progressBarLength)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(v.Question.Text))

	if v.FeedbackVisible {
		prefix := prefixWrong
		if v.Verdict.Correct {
			prefix = prefixCorrect
		}
		sb.WriteString("\n\n")
		sb.WriteString(md(prefix + v.Verdict.Text))
		if v.Verdict.Hint != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(prefixHint + v.Verdict.Hint))
		}
	}

	kb := buildQuestionKeyboard(v)
	return screen{text: sb.String(), keyboard: &kb}
}

// renderStageDone renders the panel shown after the last question of a stage.
func renderStageDone(title, finalText string) screen {
	var sb strings.Builder

	sb.WriteString(bold(headingStageDone))
	sb.WriteString("\n")
	sb.WriteString(md(title))
	if finalText != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md(finalText))
	}

	kb := buildStageDoneKeyboard()
	return screen{text: sb.String(), keyboard: &kb}
}

// renderProgress renders the /progress overview.
func renderProgress(menu service.MenuView) string {
	done := 0
	for _, e := range menu.Entries {
		if e.Completed {
			done++
		}
	}

	var sb strings.Builder
	sb.WriteString(bold(headingProgress))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%s %d / %d", buildProgressBar(done, len(menu.Entries), progressBarLength), done, len(menu.Entries))))
	sb.WriteString("\n")

	for _, e := range menu.Entries {
		prefix := prefixNotCompleted
		if e.Completed {
			prefix = prefixCompleted
		}
		sb.WriteString("\n")
		sb.WriteString(md(prefix + e.Title))
	}

	if menu.AllCompleted {
		sb.WriteString("\n\n")
		sb.WriteString(md(prefixCongratsTitle + service.CongratsTitle + " " + service.CongratsText))
	}

	return sb.String()
}

// optionLabel numbers an option the way users can type it back.
func optionLabel(i int, option string) string {
	return fmt.Sprintf("%d. %s", i+1, option)
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return fmt.Sprintf("[%s]", strings.Repeat("░", length))
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
