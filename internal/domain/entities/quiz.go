// Package entities contains domain entities used across the application.
package entities

// Quiz is one stage of the investigation: an ordered list of questions
// with a title, subtitle and optional closing text.
type Quiz struct {
	Title          string     `json:"title" yaml:"title"`                                           // stage title shown in the menu
	Subtitle       string     `json:"subtitle" yaml:"subtitle"`                                     // short description under the title
	Questions      []Question `json:"questions" yaml:"questions"`                                   // ordered questions, at least one
	CompletionText string     `json:"completion_text,omitempty" yaml:"completion_text,omitempty"` // shown after the last correct answer
}

// QuestionCount returns the number of questions in the quiz.
func (q Quiz) QuestionCount() int {
	return len(q.Questions)
}

// IsLast reports whether index points at the final question.
func (q Quiz) IsLast(index int) bool {
	return index == len(q.Questions)-1
}

// Clone returns a deep copy of the quiz so callers can't mutate the store.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		out.Questions[i] = question.Clone()
	}
	return out
}
