package service

import (
	"time"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
)

// QuizStore is the read-only quiz data store.
type QuizStore interface {
	GetAll() []entities.Quiz
	GetByIndex(index int) (entities.Quiz, error)
	Count() int
}

// SessionStore keeps per-chat sessions.
type SessionStore interface {
	IdleSince(cutoff time.Time) []int64
	DeleteIfIdle(chatID int64, cutoff time.Time) (*Session, bool)
}
