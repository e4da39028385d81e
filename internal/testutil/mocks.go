package testutil

import (
	"vocabquiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockWordSetRepository is a mock for WordSetRepository
type MockWordSetRepository struct {
	mock.Mock
}

func (m *MockWordSetRepository) Names() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWordSetRepository) Language(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockWordSetRepository) Entries(name string) ([]domain.WordEntry, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordEntry), args.Error(1)
}

// NewJapaneseRepository returns a mock serving JapaneseEntries under "japanese"
// and rejecting every other word set. Every expectation is optional.
func NewJapaneseRepository() *MockWordSetRepository {
	m := new(MockWordSetRepository)
	m.On("Names").Return([]string{domain.WordSetJapanese}, nil).Maybe()
	m.On("Entries", domain.WordSetJapanese).Return(JapaneseEntries(), nil).Maybe()
	m.On("Language", domain.WordSetJapanese).Return("Japanese", nil).Maybe()
	m.On("Entries", mock.Anything).Return(nil, domain.ErrUnsupportedWordSet).Maybe()
	m.On("Language", mock.Anything).Return("", domain.ErrUnsupportedWordSet).Maybe()
	return m
}
