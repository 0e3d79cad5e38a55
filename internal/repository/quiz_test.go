package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const validYAML = `version: 1
quizzes:
  - title: "Пустая витрина"
    subtitle: "Осмотр"
    questions:
      - id: 1
        text: "Что с витриной?"
        options: ["разбита", "цела"]
        correct_answer: 1
        hints: ["осколков нет", ""]
      - id: 2
        text: "Кого допросить?"
        options: ["реставратора", "куратора", "уборщика"]
        correct_answers:
          - answer_index: 0
            completion_text: "он нервничает"
          - answer_index: 1
    completion_text: "Готово"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestNewQuizRepositoryYAML(t *testing.T) {
	repo, err := NewQuizRepository(writeFile(t, "quizzes.yaml", validYAML), true, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected 1 quiz, got %d", repo.Count())
	}

	q, err := repo.GetByIndex(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.Title != "Пустая витрина" || q.CompletionText != "Готово" {
		t.Fatalf("unexpected quiz %+v", q)
	}
	if q.Questions[0].CorrectAnswer == nil || *q.Questions[0].CorrectAnswer != 1 {
		t.Fatalf("expected correct answer 1")
	}
	if !q.Questions[1].Branching() || len(q.Questions[1].CorrectAnswers) != 2 {
		t.Fatalf("expected branching question")
	}
	if q.Questions[0].Hint(0) != "осколков нет" {
		t.Fatalf("unexpected hint %q", q.Questions[0].Hint(0))
	}
}

func TestNewQuizRepositoryJSON(t *testing.T) {
	content := `{"version":1,"quizzes":[{"title":"t","subtitle":"s","questions":[{"id":1,"text":"q","options":["a","b"],"correct_answer":0}]}]}`
	repo, err := NewQuizRepository(writeFile(t, "quizzes.json", content), true, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected 1 quiz, got %d", repo.Count())
	}
}

func TestNewQuizRepositoryRejectsUnknownFields(t *testing.T) {
	content := strings.Replace(validYAML, "    completion_text: \"Готово\"", "    reward: 10", 1)
	if _, err := NewQuizRepository(writeFile(t, "quizzes.yaml", content), true, zap.NewNop()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestNewQuizRepositoryMissingFile(t *testing.T) {
	if _, err := NewQuizRepository(filepath.Join(t.TempDir(), "nope.yaml"), true, zap.NewNop()); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestNewQuizRepositoryStrictRejectsDefects(t *testing.T) {
	content := `version: 1
quizzes:
  - title: "broken"
    questions:
      - id: 1
        text: "q"
        options: ["a", "b"]
        correct_answer: 4
`
	_, err := NewQuizRepository(writeFile(t, "quizzes.yaml", content), true, zap.NewNop())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Field != "quizzes[0].questions[0].correct_answer" {
		t.Fatalf("unexpected issues %+v", verr.Issues)
	}
}

func TestNewQuizRepositoryLenientKeepsDefectiveQuizzes(t *testing.T) {
	content := `version: 1
quizzes:
  - title: "broken"
    questions:
      - id: 1
        text: "q"
        options: ["a", "b"]
        correct_answer: 4
  - title: "empty"
    questions: []
`
	repo, err := NewQuizRepository(writeFile(t, "quizzes.yaml", content), false, zap.NewNop())
	if err != nil {
		t.Fatalf("lenient load: %v", err)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected empty quiz to be dropped, got %d quizzes", repo.Count())
	}
	q, _ := repo.GetByIndex(0)
	if q.Title != "broken" {
		t.Fatalf("expected defective quiz kept, got %q", q.Title)
	}
}

func TestNewQuizRepositoryLenientAllEmpty(t *testing.T) {
	content := "version: 1\nquizzes:\n  - title: \"empty\"\n    questions: []\n"
	_, err := NewQuizRepository(writeFile(t, "quizzes.yaml", content), false, zap.NewNop())
	if !errors.Is(err, ErrEmptyStore) {
		t.Fatalf("expected ErrEmptyStore, got %v", err)
	}
}

func TestGetByIndexOutOfRange(t *testing.T) {
	repo, err := NewQuizRepository(writeFile(t, "quizzes.yaml", validYAML), true, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	for _, idx := range []int{-1, 1, 99} {
		if _, err := repo.GetByIndex(idx); !errors.Is(err, ErrQuizNotFound) {
			t.Fatalf("index %d: expected ErrQuizNotFound, got %v", idx, err)
		}
	}
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo, err := NewQuizRepository(writeFile(t, "quizzes.yaml", validYAML), true, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	q, _ := repo.GetByIndex(0)
	q.Questions[0].Options[0] = "mutated"
	*q.Questions[0].CorrectAnswer = 0

	again, _ := repo.GetByIndex(0)
	if again.Questions[0].Options[0] != "разбита" || *again.Questions[0].CorrectAnswer != 1 {
		t.Fatalf("store was mutated through a returned value")
	}
}

func TestShippedQuizzesAreValid(t *testing.T) {
	path := filepath.Join("..", "..", "assets", "data", "quizzes.yaml")
	repo, err := NewQuizRepository(path, true, zap.NewNop())
	if err != nil {
		t.Fatalf("shipped quiz data: %v", err)
	}
	if repo.Count() != 5 {
		t.Fatalf("expected 5 stages, got %d", repo.Count())
	}
}

func TestNewQuizRepositoryLenientWarnsAboutUnanswerableQuestions(t *testing.T) {
	content := `version: 1
quizzes:
  - title: "broken"
    questions:
      - id: 1
        text: "q"
        options: ["a", "b"]
        correct_answer: 0
      - id: 7
        text: "no way out"
        options: ["a", "b"]
        correct_answer: 5
`
	core, logs := observer.New(zapcore.WarnLevel)
	if _, err := NewQuizRepository(writeFile(t, "quizzes.yaml", content), false, zap.New(core)); err != nil {
		t.Fatalf("lenient load: %v", err)
	}

	entries := logs.FilterMessage("question has no correct option, its quiz cannot be completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if id := entries[0].ContextMap()["question_id"]; id != int64(7) {
		t.Fatalf("expected question 7, got %v", id)
	}
}
