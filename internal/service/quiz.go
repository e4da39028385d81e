package service

import (
	"errors"
	"fmt"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/repository"

	"go.uber.org/zap"
)

// QuizService runs quiz sessions over a word set provider
type QuizService struct {
	wordSets repository.WordSetRepository
	pick     Picker
	logger   *zap.Logger
}

// NewQuizService creates a new quiz service.
// A nil picker falls back to RandomPicker.
func NewQuizService(wordSets repository.WordSetRepository, pick Picker, logger *zap.Logger) *QuizService {
	if pick == nil {
		pick = RandomPicker
	}
	return &QuizService{
		wordSets: wordSets,
		pick:     pick,
		logger:   logger,
	}
}

// Start initializes a session for a word set and raw direction value.
// An empty direction means the default one.
func (s *QuizService) Start(wordSet, direction string) (*domain.Session, error) {
	session, err := s.build(wordSet, direction, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quiz session started",
		zap.String("word_set", wordSet),
		zap.String("direction", string(session.Direction)),
		zap.Int("items", len(session.Items)),
		zap.Int("groups", len(session.Groups)),
	)
	return session, nil
}

func (s *QuizService) build(wordSet, direction string, carry *domain.Session) (*domain.Session, error) {
	entries, err := s.wordSets.Entries(wordSet)
	if err != nil {
		return nil, fmt.Errorf("failed to load word set: %w", err)
	}

	language, err := s.wordSets.Language(wordSet)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve language: %w", err)
	}

	dir := domain.DefaultDirection
	if direction != "" {
		dir = domain.Direction(direction)
	}

	session, err := initSession(wordSet, language, entries, dir)
	if err != nil {
		return nil, err
	}

	if carry != nil {
		carryGroups(session, carry)
	}

	selectPresenter(session, s.pick)
	return session, nil
}

// Submit evaluates an answer for the presenting item
func (s *QuizService) Submit(session *domain.Session, attempt string) (*domain.Session, error) {
	next, err := SubmitAnswer(session, attempt, s.pick)
	if err != nil {
		return session, err
	}

	s.logger.Debug("Answer evaluated",
		zap.String("word_set", next.WordSet),
		zap.Bool("correct", next.LastError == nil),
		zap.Int("remaining", next.Remaining()),
	)
	return next, nil
}

// ToggleGroup changes a group's active flag
func (s *QuizService) ToggleGroup(session *domain.Session, value string, active bool) (*domain.Session, error) {
	return ToggleGroup(session, value, active, s.pick)
}

// ChangeDirection rebuilds the session in a new direction.
// Group filters are kept.
func (s *QuizService) ChangeDirection(session *domain.Session, direction string) (*domain.Session, error) {
	if _, err := domain.ParseDirection(direction); err != nil {
		return session, err
	}
	return s.build(session.WordSet, direction, session)
}

// Reset rebuilds the session with the default direction and all groups active
func (s *QuizService) Reset(session *domain.Session) (*domain.Session, error) {
	return s.build(session.WordSet, string(domain.DefaultDirection), nil)
}

// SwitchWordSet starts over with another word set in the default direction
func (s *QuizService) SwitchWordSet(session *domain.Session, wordSet string) (*domain.Session, error) {
	next, err := s.build(wordSet, string(domain.DefaultDirection), nil)
	if err != nil {
		return session, err
	}
	return next, nil
}

// WordSets lists the word sets the provider knows
func (s *QuizService) WordSets() []string {
	names, err := s.wordSets.Names()
	if err != nil {
		s.logger.Warn("Failed to list word sets", zap.Error(err))
		return nil
	}
	return names
}

// View derives the render state of a session
func (s *QuizService) View(session *domain.Session) domain.View {
	v := domain.View{
		WordSet:   session.WordSet,
		WordSets:  s.WordSets(),
		Modes:     session.Modes,
		Direction: session.Direction,
		Groups:    session.Groups,
		Remaining: session.Remaining(),
		Feedback:  session.LastError.Text(),
		Done:      session.Done(),
	}

	if current, ok := session.Presenting(); ok && !v.Done {
		v.Prompt = current.Prompt
	}
	return v
}

// IsRecoverable reports errors a rendering layer should ignore and re-render
func IsRecoverable(err error) bool {
	return errors.Is(err, domain.ErrNoPresentingItem) ||
		errors.Is(err, domain.ErrGroupNotFound)
}

// IsInvalidRequest reports errors caused by an unknown word set or direction
// in a client request. The session is left unchanged.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, domain.ErrInvalidDirection) ||
		errors.Is(err, domain.ErrUnsupportedWordSet)
}
