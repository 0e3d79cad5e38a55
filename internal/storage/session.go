package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

type chatSession struct {
	session   *service.Session
	messageID int
	lastSeen  time.Time
}

// SessionStorage provides in-memory storage for player sessions by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*chatSession
	factory  func(chatID int64) *service.Session
	onRemove func(chatID int64)
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage. factory builds the session
// for a chat the first time it is seen; it must not call back into the storage.
func NewSessionStorage(factory func(chatID int64) *service.Session) *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*chatSession),
		factory:  factory,
		now:      time.Now,
	}
}

// GetOrCreate returns the chat's session, creating it on first use.
func (s *SessionStorage) GetOrCreate(chatID int64) *service.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.sessions[chatID]
	if !ok {
		cs = &chatSession{session: s.factory(chatID)}
		s.sessions[chatID] = cs
	}
	cs.lastSeen = s.now()
	return cs.session
}

// OnRemove registers fn to be called, outside the storage lock, for every
// chat whose session is removed.
func (s *SessionStorage) OnRemove(fn func(chatID int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRemove = fn
}

// Get retrieves the chat's session without creating one.
func (s *SessionStorage) Get(chatID int64) (*service.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.sessions[chatID]
	if !ok {
		return nil, false
	}
	return cs.session, true
}

// SetMessageID remembers the message that shows the chat's live screen.
func (s *SessionStorage) SetMessageID(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok := s.sessions[chatID]; ok {
		cs.messageID = messageID
	}
}

// MessageID returns the id of the chat's live screen message.
func (s *SessionStorage) MessageID(chatID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.sessions[chatID]
	if !ok || cs.messageID == 0 {
		return 0, false
	}
	return cs.messageID, true
}

// Touch records activity in the chat.
func (s *SessionStorage) Touch(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok := s.sessions[chatID]; ok {
		cs.lastSeen = s.now()
	}
}

// IdleSince lists chats whose last activity is before cutoff.
func (s *SessionStorage) IdleSince(cutoff time.Time) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []int64
	for id, cs := range s.sessions {
		if cs.lastSeen.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// DeleteIfIdle removes the chat's session only if its last activity is
// still before cutoff. The check and the removal happen under one lock,
// so a chat touched in between survives.
func (s *SessionStorage) DeleteIfIdle(chatID int64, cutoff time.Time) (*service.Session, bool) {
	s.mu.Lock()
	cs, ok := s.sessions[chatID]
	if !ok || !cs.lastSeen.Before(cutoff) {
		s.mu.Unlock()
		return nil, false
	}
	delete(s.sessions, chatID)
	onRemove := s.onRemove
	s.mu.Unlock()

	if onRemove != nil {
		onRemove(chatID)
	}
	return cs.session, true
}

// CloseAll tears down every session.
func (s *SessionStorage) CloseAll() {
	s.mu.Lock()
	removed := make([]int64, 0, len(s.sessions))
	for id, cs := range s.sessions {
		cs.session.Close()
		delete(s.sessions, id)
		removed = append(removed, id)
	}
	onRemove := s.onRemove
	s.mu.Unlock()

	if onRemove != nil {
		for _, id := range removed {
			onRemove(id)
		}
	}
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
