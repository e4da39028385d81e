package service

import (
	"time"

	"go.uber.org/zap"
)

// JanitorService evicts abandoned quiz sessions
type JanitorService struct {
	store  *SessionStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewJanitorService creates a new janitor service
func NewJanitorService(store *SessionStore, ttl time.Duration, logger *zap.Logger) *JanitorService {
	return &JanitorService{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// CleanupIdleSessions removes sessions idle for longer than the configured ttl
func (s *JanitorService) CleanupIdleSessions() int {
	s.logger.Info("Starting cleanup of idle sessions", zap.Duration("idle_ttl", s.ttl))

	evicted := s.store.EvictIdle(s.ttl)

	s.logger.Info("Cleanup completed",
		zap.Int("evicted", evicted),
		zap.Int("active", s.store.Len()),
	)
	return evicted
}
