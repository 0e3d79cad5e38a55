package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically drops chat sessions nobody has touched for a while,
// tearing down their attempts so no timer outlives its session.
type Sweeper struct {
	store    SessionStore
	schedule string
	idleTTL  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSweeper creates a sweeper running on a cron schedule such as "@every 30m".
func NewSweeper(store SessionStore, schedule string, idleTTL time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		schedule: schedule,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep job until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		removed := s.Sweep()
		s.logger.Debug("idle sessions swept", zap.Int("removed", removed))
	})
	if err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("idle_ttl", s.idleTTL),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep removes idle sessions once and returns how many were dropped.
func (s *Sweeper) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)
	ids := s.store.IdleSince(cutoff)

	removed := 0
	for _, chatID := range ids {
		// The chat may have become active since IdleSince.
		session, ok := s.store.DeleteIfIdle(chatID, cutoff)
		if !ok {
			continue
		}
		session.Close()
		removed++
		s.logger.Debug("idle session removed", zap.Int64("chat_id", chatID))
	}
	return removed
}
