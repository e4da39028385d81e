package service

import (
	"fmt"
	"math/rand"

	"vocabquiz/internal/domain"
)

// Picker returns a uniformly distributed index in [0, n)
type Picker func(n int) int

// RandomPicker picks with the shared math/rand source
func RandomPicker(n int) int {
	return rand.Intn(n)
}

// NewSession builds a fresh session for a word set and selects the first presenter
func NewSession(wordSet, language string, entries []domain.WordEntry, direction domain.Direction, pick Picker) (*domain.Session, error) {
	s, err := initSession(wordSet, language, entries, direction)
	if err != nil {
		return nil, err
	}

	selectPresenter(s, pick)
	return s, nil
}

// initSession builds items and groups without choosing a presenter
func initSession(wordSet, language string, entries []domain.WordEntry, direction domain.Direction) (*domain.Session, error) {
	modes, err := buildModes(wordSet, language)
	if err != nil {
		return nil, err
	}

	items, err := buildItems(entries, direction)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		WordSet:   wordSet,
		Direction: direction,
		Modes:     modes,
		Items:     items,
		Groups:    buildGroups(entries),
	}, nil
}

func buildModes(wordSet, language string) ([]domain.Mode, error) {
	if language == "" {
		return nil, fmt.Errorf("%w: %q has no language label", domain.ErrUnsupportedWordSet, wordSet)
	}

	return []domain.Mode{
		{Label: language, Value: domain.DirectionFirst},
		{Label: "English", Value: domain.DirectionSecond},
	}, nil
}

func buildItems(entries []domain.WordEntry, direction domain.Direction) ([]domain.QuizItem, error) {
	var reversed bool
	switch direction {
	case domain.DirectionFirst:
	case domain.DirectionSecond:
		reversed = true
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDirection, direction)
	}

	items := make([]domain.QuizItem, len(entries))
	for i, e := range entries {
		prompt, answer := e.Native, e.Foreign
		if reversed {
			prompt, answer = answer, prompt
		}
		items[i] = domain.QuizItem{
			ID:         i,
			Prompt:     prompt,
			Answer:     answer,
			Group:      e.Group,
			Unanswered: true,
		}
	}
	return items, nil
}

// buildGroups de-duplicates group tags keeping first-seen order
func buildGroups(entries []domain.WordEntry) []domain.QuizItemGroup {
	seen := make(map[string]bool)
	var groups []domain.QuizItemGroup
	for _, e := range entries {
		if seen[e.Group] {
			continue
		}
		seen[e.Group] = true
		groups = append(groups, domain.QuizItemGroup{Value: e.Group, Active: true})
	}
	return groups
}

// selectPresenter marks one random eligible item as presenting.
// Stale presenting flags must be cleared by the caller.
// Nothing is marked when the pool is empty.
func selectPresenter(s *domain.Session, pick Picker) {
	pool := s.Pool()
	if len(pool) == 0 {
		return
	}

	idx := pick(len(pool))
	if idx < 0 || idx >= len(pool) {
		idx = 0
	}
	s.Items[pool[idx]].Presenting = true
}

func clearPresenting(s *domain.Session) {
	for i := range s.Items {
		s.Items[i].Presenting = false
	}
}

// SubmitAnswer evaluates an attempt against the presenting item.
// Comparison is exact: no trimming, no case folding.
// A wrong answer leaves the item in the pool and records feedback.
func SubmitAnswer(s *domain.Session, attempt string, pick Picker) (*domain.Session, error) {
	i, ok := s.PresentingIndex()
	if !ok {
		return s, domain.ErrNoPresentingItem
	}

	next := s.Clone()
	current := next.Items[i]

	if attempt == current.Answer {
		next.Items[i].Unanswered = false
		next.LastError = nil
	} else {
		next.LastError = &domain.Feedback{Prompt: current.Prompt, Answer: current.Answer}
	}

	next.Items[i].Presenting = false
	selectPresenter(next, pick)
	return next, nil
}

// ToggleGroup sets a group's active flag and reselects the presenter
// when the current one is no longer eligible
func ToggleGroup(s *domain.Session, value string, active bool, pick Picker) (*domain.Session, error) {
	gi, ok := s.GroupIndex(value)
	if !ok {
		return s, fmt.Errorf("%w: %q", domain.ErrGroupNotFound, value)
	}

	next := s.Clone()
	next.Groups[gi].Active = active

	activeGroups := next.ActiveGroups()
	if current, ok := next.Presenting(); ok && activeGroups[current.Group] {
		return next, nil
	}

	clearPresenting(next)
	selectPresenter(next, pick)
	return next, nil
}

// carryGroups copies active flags of groups that exist in both sessions
func carryGroups(dst, src *domain.Session) {
	for i, g := range dst.Groups {
		if j, ok := src.GroupIndex(g.Value); ok {
			dst.Groups[i].Active = src.Groups[j].Active
		}
	}
}
