package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionMenu    = "menu"
	actionQuiz    = "quiz"
	actionAnswer  = "answer"
	actionRestart = "restart"
	actionNext    = "next"
)

// Quiz sub-actions.
const (
	quizStart = "start"
)

// maxCallbackDataLen is the Bot API limit for callback_data.
const maxCallbackDataLen = 64

var ErrMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerCallback is a decoded answer button press.
type answerCallback struct {
	Attempt  string // short attempt id
	Question int
	Option   int
}

func buildMenuCallback() string {
	return actionMenu
}

func buildRestartCallback() string {
	return actionRestart
}

func buildNextCallback() string {
	return actionNext
}

// buildQuizStartCallback builds callback data for opening the quiz at index.
func buildQuizStartCallback(index int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart, strconv.Itoa(index)},
	}.encode()
}

// buildAnswerCallback builds callback data for answering a question of a specific attempt.
func buildAnswerCallback(attempt string, question, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{attempt, strconv.Itoa(question), strconv.Itoa(option)},
	}.encode()
}

// parseQuizStart extracts the quiz index from quiz:start:<i>.
func parseQuizStart(cd callbackData) (int, error) {
	if cd.Action != actionQuiz || len(cd.Params) != 2 || cd.Params[0] != quizStart {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCallback, cd.Raw)
	}
	index, err := strconv.Atoi(cd.Params[1])
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCallback, cd.Raw)
	}
	return index, nil
}

// parseAnswer extracts attempt, question and option from answer:<attempt>:<q>:<option>.
func parseAnswer(cd callbackData) (answerCallback, error) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 || cd.Params[0] == "" {
		return answerCallback{}, fmt.Errorf("%w: %q", ErrMalformedCallback, cd.Raw)
	}
	question, err1 := strconv.Atoi(cd.Params[1])
	option, err2 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil || question < 0 || option < 0 {
		return answerCallback{}, fmt.Errorf("%w: %q", ErrMalformedCallback, cd.Raw)
	}
	return answerCallback{Attempt: cd.Params[0], Question: question, Option: option}, nil
}
