package repository

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
)

// Issue is a single defect in the quiz data.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every defect found in the quiz data.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("quiz data validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks quiz definitions for configuration defects.
func Validate(version int, quizzes []entities.Quiz) error {
	c := &issueCollector{}

	if version == 0 {
		c.add("version", "is required")
	} else if version != supportedVersion {
		c.add("version", fmt.Sprintf("unsupported version %d", version))
	}
	if len(quizzes) == 0 {
		c.add("quizzes", "must include at least one entry")
	}

	for i, q := range quizzes {
		prefix := fmt.Sprintf("quizzes[%d]", i)
		if strings.TrimSpace(q.Title) == "" {
			c.add(prefix+".title", "is required")
		}
		if len(q.Questions) == 0 {
			c.add(prefix+".questions", "must include at least one entry")
		}

		seenIDs := map[int]struct{}{}
		for j, question := range q.Questions {
			qp := fmt.Sprintf("%s.questions[%d]", prefix, j)
			if _, ok := seenIDs[question.ID]; ok {
				c.add(qp+".id", fmt.Sprintf("duplicate id %d", question.ID))
			}
			seenIDs[question.ID] = struct{}{}
			validateQuestion(c, qp, question)
		}
	}

	return c.result()
}

func validateQuestion(c *issueCollector, prefix string, q entities.Question) {
	if strings.TrimSpace(q.Text) == "" {
		c.add(prefix+".text", "is required")
	}
	if len(q.Options) < 2 {
		c.add(prefix+".options", "must include at least two entries")
	}
	for i, option := range q.Options {
		if strings.TrimSpace(option) == "" {
			c.add(fmt.Sprintf("%s.options[%d]", prefix, i), "is required")
		}
	}
	if len(q.Hints) > len(q.Options) {
		c.add(prefix+".hints", "has more entries than options")
	}

	switch {
	case q.Branching():
		seen := map[int]struct{}{}
		for i, b := range q.CorrectAnswers {
			field := fmt.Sprintf("%s.correct_answers[%d].answer_index", prefix, i)
			if !q.HasOption(b.AnswerIndex) {
				c.add(field, fmt.Sprintf("index %d is out of range", b.AnswerIndex))
			}
			if _, ok := seen[b.AnswerIndex]; ok {
				c.add(field, fmt.Sprintf("duplicate index %d", b.AnswerIndex))
			}
			seen[b.AnswerIndex] = struct{}{}
		}
	case q.CorrectAnswer != nil:
		if !q.HasOption(*q.CorrectAnswer) {
			c.add(prefix+".correct_answer", fmt.Sprintf("index %d is out of range", *q.CorrectAnswer))
		}
	default:
		c.add(prefix, "needs correct_answer or correct_answers")
	}
}
