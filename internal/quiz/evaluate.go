package quiz

import (
	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
)

// Feedback texts.
const (
	TextCorrectNext  = "Правильно! Переходите к следующему вопросу"
	TextCorrectFinal = "Правильно! Этап завершён"
	TextIncorrect    = "Неверно. Попробуйте ещё раз."
)

// Verdict is the outcome of choosing an option.
type Verdict struct {
	Correct bool
	Text    string // follow-up text shown in the feedback panel
	Hint    string // clue attached to the chosen option, only for wrong picks
}

// Evaluate judges option for question qi of q.
// Malformed questions (no correctness, index out of range) are never correct.
func Evaluate(q entities.Quiz, qi int, option int) Verdict {
	if qi < 0 || qi >= len(q.Questions) {
		return Verdict{Text: TextIncorrect}
	}
	question := q.Questions[qi]
	if !question.HasOption(option) {
		return Verdict{Text: TextIncorrect}
	}

	switch {
	case question.Branching():
		if b, ok := question.Branch(option); ok {
			text := b.CompletionText
			if text == "" {
				text = successText(q, qi)
			}
			return Verdict{Correct: true, Text: text}
		}
	case question.CorrectAnswer != nil:
		correct := *question.CorrectAnswer
		if question.HasOption(correct) && correct == option {
			return Verdict{Correct: true, Text: successText(q, qi)}
		}
	}

	return Verdict{Text: TextIncorrect, Hint: question.Hint(option)}
}

// CorrectOptions lists the options that would be judged correct.
func CorrectOptions(question entities.Question) []int {
	var out []int
	if question.Branching() {
		for _, b := range question.CorrectAnswers {
			if question.HasOption(b.AnswerIndex) {
				out = append(out, b.AnswerIndex)
			}
		}
		return out
	}
	if question.CorrectAnswer != nil && question.HasOption(*question.CorrectAnswer) {
		out = append(out, *question.CorrectAnswer)
	}
	return out
}

func successText(q entities.Quiz, qi int) string {
	question := q.Questions[qi]
	if question.CompletionText != "" {
		return question.CompletionText
	}
	if q.IsLast(qi) {
		if q.CompletionText != "" {
			return q.CompletionText
		}
		return TextCorrectFinal
	}
	return TextCorrectNext
}
