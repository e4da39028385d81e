package embedded

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"

	"vocabquiz/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// languages maps bundled word sets to the label of their language
var languages = map[string]string{
	domain.WordSetChinese:  "Chinese",
	domain.WordSetJapanese: "Japanese",
}

// WordSetRepo implements repository.WordSetRepository over the bundled data files
type WordSetRepo struct {
	entries map[string][]domain.WordEntry
}

// NewWordSetRepo parses every bundled word set
func NewWordSetRepo() (*WordSetRepo, error) {
	r := &WordSetRepo{entries: make(map[string][]domain.WordEntry, len(languages))}

	for name := range languages {
		raw, err := dataFS.ReadFile(path.Join("data", name+".json"))
		if err != nil {
			return nil, fmt.Errorf("failed to read word set %q: %w", name, err)
		}

		entries, err := parseEntries(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse word set %q: %w", name, err)
		}
		r.entries[name] = entries
	}

	return r, nil
}

// parseEntries decodes a JSON array of [native, foreign, group] triples
func parseEntries(raw []byte) ([]domain.WordEntry, error) {
	var triples [][]string
	if err := json.Unmarshal(raw, &triples); err != nil {
		return nil, err
	}

	entries := make([]domain.WordEntry, 0, len(triples))
	for i, t := range triples {
		if len(t) != 3 {
			return nil, fmt.Errorf("entry %d: expected 3 fields, got %d", i, len(t))
		}
		entries = append(entries, domain.WordEntry{Native: t[0], Foreign: t[1], Group: t[2]})
	}
	return entries, nil
}

// Names returns the bundled word sets in alphabetical order
func (r *WordSetRepo) Names() ([]string, error) {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Language returns the language label of a word set
func (r *WordSetRepo) Language(name string) (string, error) {
	language, ok := languages[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedWordSet, name)
	}
	return language, nil
}

// Entries returns a copy of a word set's entries in file order
func (r *WordSetRepo) Entries(name string) ([]domain.WordEntry, error) {
	entries, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedWordSet, name)
	}
	return append([]domain.WordEntry(nil), entries...), nil
}
