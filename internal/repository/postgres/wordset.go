package postgres

import (
	"database/sql"
	"fmt"

	"vocabquiz/internal/domain"
)

// WordSetRepo implements repository.WordSetRepository
type WordSetRepo struct {
	db *sql.DB
}

// NewWordSetRepo creates a new word set repository
func NewWordSetRepo(db *sql.DB) *WordSetRepo {
	return &WordSetRepo{db: db}
}

// Names returns all stored word sets
func (r *WordSetRepo) Names() ([]string, error) {
	query := `SELECT name FROM word_sets ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Language returns the language label of a word set
func (r *WordSetRepo) Language(name string) (string, error) {
	var language string
	query := `SELECT language FROM word_sets WHERE name = $1`
	err := r.db.QueryRow(query, name).Scan(&language)

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedWordSet, name)
	}
	if err != nil {
		return "", err
	}

	return language, nil
}

// Entries returns a word set's entries in insertion order
func (r *WordSetRepo) Entries(name string) ([]domain.WordEntry, error) {
	query := `
		SELECT native_text, foreign_text, group_tag
		FROM word_entries
		WHERE word_set = $1
		ORDER BY position
	`

	rows, err := r.db.Query(query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WordEntry
	for rows.Next() {
		var e domain.WordEntry
		if err := rows.Scan(&e.Native, &e.Foreign, &e.Group); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// An empty result is either an empty set or an unknown one
	if len(entries) == 0 {
		if _, err := r.Language(name); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// Seed stores a word set unless one with the same name exists.
// Reports whether anything was inserted.
func (r *WordSetRepo) Seed(name, language string, entries []domain.WordEntry) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO word_sets (name, language)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`, name, language)
	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted == 0 {
		return false, nil
	}

	for i, e := range entries {
		_, err := tx.Exec(`
			INSERT INTO word_entries (word_set, position, native_text, foreign_text, group_tag)
			VALUES ($1, $2, $3, $4, $5)
		`, name, i, e.Native, e.Foreign, e.Group)
		if err != nil {
			return false, fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
