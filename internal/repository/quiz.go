package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrEmptyStore   = errors.New("no quizzes available")
)

const supportedVersion = 1

// quizFile is the on-disk layout of the quiz data store.
type quizFile struct {
	Version int             `json:"version" yaml:"version"`
	Quizzes []entities.Quiz `json:"quizzes" yaml:"quizzes"`
}

// QuizRepository provides read-only access to the investigation stages.
// Quizzes are loaded once at startup and never change afterwards.
type QuizRepository struct {
	quizzes []entities.Quiz
}

// NewQuizRepository loads and validates quizzes from a YAML or JSON file.
// With strict set, any configuration defect fails the load. Otherwise defects
// are logged, quizzes without questions are dropped and the rest are kept.
func NewQuizRepository(path string, strict bool, logger *zap.Logger) (*QuizRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quizzes: %w", err)
	}

	file, err := parseQuizFile(data, path)
	if err != nil {
		return nil, err
	}

	quizzes, err := applyValidation(file, strict, logger)
	if err != nil {
		return nil, err
	}

	return NewQuizRepositoryFromQuizzes(quizzes)
}

// NewQuizRepositoryFromQuizzes builds a repository from already validated quizzes.
func NewQuizRepositoryFromQuizzes(quizzes []entities.Quiz) (*QuizRepository, error) {
	if len(quizzes) == 0 {
		return nil, ErrEmptyStore
	}

	stored := make([]entities.Quiz, len(quizzes))
	for i, q := range quizzes {
		stored[i] = q.Clone()
	}

	return &QuizRepository{quizzes: stored}, nil
}

// GetAll returns copies of all quizzes in menu order.
func (r *QuizRepository) GetAll() []entities.Quiz {
	out := make([]entities.Quiz, len(r.quizzes))
	for i, q := range r.quizzes {
		out[i] = q.Clone()
	}
	return out
}

// GetByIndex returns the quiz at the given menu position.
func (r *QuizRepository) GetByIndex(index int) (entities.Quiz, error) {
	if index < 0 || index >= len(r.quizzes) {
		return entities.Quiz{}, ErrQuizNotFound
	}
	return r.quizzes[index].Clone(), nil
}

// Count returns the number of quizzes.
func (r *QuizRepository) Count() int {
	return len(r.quizzes)
}

func applyValidation(file quizFile, strict bool, logger *zap.Logger) ([]entities.Quiz, error) {
	err := Validate(file.Version, file.Quizzes)
	if err == nil {
		return file.Quizzes, nil
	}
	if strict {
		return nil, err
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}
	for _, issue := range verr.Issues {
		logger.Warn("quiz data defect",
			zap.String("field", issue.Field),
			zap.String("message", issue.Message),
		)
	}

	kept := make([]entities.Quiz, 0, len(file.Quizzes))
	for i, q := range file.Quizzes {
		if len(q.Questions) == 0 {
			logger.Warn("dropping quiz without questions",
				zap.Int("index", i),
				zap.String("title", q.Title),
			)
			continue
		}
		for _, question := range q.Questions {
			if len(quiz.CorrectOptions(question)) == 0 {
				logger.Warn("question has no correct option, its quiz cannot be completed",
					zap.Int("index", i),
					zap.String("title", q.Title),
					zap.Int("question_id", question.ID),
				)
			}
		}
		kept = append(kept, q)
	}
	return kept, nil
}

func parseQuizFile(data []byte, path string) (quizFile, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSONQuizzes(data)
	}
	return parseYAMLQuizzes(data)
}

func parseJSONQuizzes(data []byte) (quizFile, error) {
	var file quizFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return quizFile{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return quizFile{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return quizFile{}, fmt.Errorf("parse json: %w", err)
	}
	return file, nil
}

func parseYAMLQuizzes(data []byte) (quizFile, error) {
	var file quizFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return quizFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return quizFile{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return quizFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return file, nil
}
