package repository

import (
	"vocabquiz/internal/domain"
)

// WordSetRepository provides read-only access to vocabulary word sets.
// Unknown names yield domain.ErrUnsupportedWordSet.
type WordSetRepository interface {
	Names() ([]string, error)
	Language(name string) (string, error)
	Entries(name string) ([]domain.WordEntry, error)
}
