package domain

// WordEntry is one vocabulary triple of a word set
type WordEntry struct {
	Native  string // text in the word set's language
	Foreign string // English counterpart
	Group   string
}

// Bundled word set identifiers
const (
	WordSetChinese  = "chinese"
	WordSetJapanese = "japanese"
)

// DefaultWordSet is used when no word set is configured
const DefaultWordSet = WordSetJapanese
