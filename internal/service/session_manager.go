package service

import (
	"fmt"

	"vocabquiz/internal/domain"

	"go.uber.org/zap"
)

// Defaults are the word set and direction a new client session starts with
type Defaults struct {
	WordSet   string
	Direction string
}

// SessionManager applies quiz events to the session of a client key.
// Every event is a single read-transform-replace on the store.
type SessionManager struct {
	quiz     *QuizService
	store    *SessionStore
	defaults Defaults
	logger   *zap.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(quiz *QuizService, store *SessionStore, defaults Defaults, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		quiz:     quiz,
		store:    store,
		defaults: defaults,
		logger:   logger,
	}
}

// Apply runs a transition on the session under key, starting one from the
// defaults when none exists. Recoverable errors are logged and leave the
// session unchanged; other errors are returned, also leaving it unchanged.
func (m *SessionManager) Apply(key string, transition func(*domain.Session) (*domain.Session, error)) (domain.View, error) {
	session, err := m.store.Update(key, func(current *domain.Session) (*domain.Session, error) {
		if current == nil {
			started, err := m.quiz.Start(m.defaults.WordSet, m.defaults.Direction)
			if err != nil {
				return nil, err
			}
			current = started
		}

		next, err := transition(current)
		if err != nil {
			if IsRecoverable(err) {
				m.logger.Info("Ignoring quiz event",
					zap.String("session", key),
					zap.Error(err),
				)
				return current, nil
			}
			return nil, err
		}
		return next, nil
	})
	if err != nil {
		return domain.View{}, err
	}

	return m.quiz.View(session), nil
}

// Current returns the view of the session under key, starting one if needed
func (m *SessionManager) Current(key string) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		return s, nil
	})
}

// Restart replaces the session under key with a fresh one from the defaults
func (m *SessionManager) Restart(key string) (domain.View, error) {
	session, err := m.store.Update(key, func(*domain.Session) (*domain.Session, error) {
		return m.quiz.Start(m.defaults.WordSet, m.defaults.Direction)
	})
	if err != nil {
		return domain.View{}, err
	}
	return m.quiz.View(session), nil
}

// Submit evaluates an answer
func (m *SessionManager) Submit(key, attempt string) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		return m.quiz.Submit(s, attempt)
	})
}

// ToggleGroup sets a group's active flag
func (m *SessionManager) ToggleGroup(key, value string, active bool) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		return m.quiz.ToggleGroup(s, value, active)
	})
}

// FlipGroup inverts the active flag of a group
func (m *SessionManager) FlipGroup(key, value string) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		i, ok := s.GroupIndex(value)
		if !ok {
			return s, fmt.Errorf("%w: %q", domain.ErrGroupNotFound, value)
		}
		return m.quiz.ToggleGroup(s, value, !s.Groups[i].Active)
	})
}

// FlipGroupAt inverts the active flag of the group at a position of a word
// set. A position taken from another word set matches no group.
func (m *SessionManager) FlipGroupAt(key, wordSet string, index int) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		if s.WordSet != wordSet || index < 0 || index >= len(s.Groups) {
			return s, fmt.Errorf("%w: %s index %d", domain.ErrGroupNotFound, wordSet, index)
		}
		g := s.Groups[index]
		return m.quiz.ToggleGroup(s, g.Value, !g.Active)
	})
}

// ChangeDirection rebuilds the session in another direction
func (m *SessionManager) ChangeDirection(key, direction string) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		return m.quiz.ChangeDirection(s, direction)
	})
}

// Reset rebuilds the session with default direction and filters
func (m *SessionManager) Reset(key string) (domain.View, error) {
	return m.Apply(key, m.quiz.Reset)
}

// SwitchWordSet starts over with another word set
func (m *SessionManager) SwitchWordSet(key, wordSet string) (domain.View, error) {
	return m.Apply(key, func(s *domain.Session) (*domain.Session, error) {
		return m.quiz.SwitchWordSet(s, wordSet)
	})
}
