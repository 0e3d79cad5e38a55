package entities

// AnswerBranch is one acceptable option of a branching question together
// with the follow-up text shown when the user picks it.
type AnswerBranch struct {
	AnswerIndex    int    `json:"answer_index" yaml:"answer_index"`
	CompletionText string `json:"completion_text,omitempty" yaml:"completion_text,omitempty"`
}

// Question is a single multiple-choice question.
// Correctness is given either by CorrectAnswer or by CorrectAnswers (branching).
type Question struct {
	ID             int            `json:"id" yaml:"id"`
	Text           string         `json:"text" yaml:"text"`
	Options        []string       `json:"options" yaml:"options"`
	CorrectAnswer  *int           `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
	CorrectAnswers []AnswerBranch `json:"correct_answers,omitempty" yaml:"correct_answers,omitempty"`
	Hints          []string       `json:"hints,omitempty" yaml:"hints,omitempty"` // per-option clue, aligned with Options
	CompletionText string         `json:"completion_text,omitempty" yaml:"completion_text,omitempty"`
}

// Branching reports whether the question accepts several answers.
// Branching takes precedence over CorrectAnswer when both are set.
func (q Question) Branching() bool {
	return len(q.CorrectAnswers) > 0
}

// Branch returns the branch for the given option, if the option is acceptable.
func (q Question) Branch(option int) (AnswerBranch, bool) {
	for _, b := range q.CorrectAnswers {
		if b.AnswerIndex == option {
			return b, true
		}
	}
	return AnswerBranch{}, false
}

// Hint returns the clue attached to option i or an empty string.
func (q Question) Hint(i int) string {
	if i < 0 || i >= len(q.Hints) {
		return ""
	}
	return q.Hints[i]
}

// HasOption reports whether i is a valid option index.
func (q Question) HasOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	out.Hints = append([]string(nil), q.Hints...)
	out.CorrectAnswers = append([]AnswerBranch(nil), q.CorrectAnswers...)
	if q.CorrectAnswer != nil {
		v := *q.CorrectAnswer
		out.CorrectAnswer = &v
	}
	return out
}

// IntPtr is a helper for building questions in code.
func IntPtr(v int) *int {
	return &v
}
