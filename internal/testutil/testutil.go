package testutil

import (
	"vocabquiz/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// JapaneseEntries returns five entries in three groups
func JapaneseEntries() []domain.WordEntry {
	return []domain.WordEntry{
		{Native: "いち", Foreign: "one", Group: "numbers"},
		{Native: "に", Foreign: "two", Group: "numbers"},
		{Native: "いぬ", Foreign: "dog", Group: "animals"},
		{Native: "ねこ", Foreign: "cat", Group: "animals"},
		{Native: "こんにちは", Foreign: "hello", Group: "greetings"},
	}
}

// FixedPicker always picks index i, clamped to the pool size
func FixedPicker(i int) func(n int) int {
	return func(n int) int {
		if i >= n {
			return n - 1
		}
		return i
	}
}

// RecordingPicker picks index 0 and records every pool size it was asked about
type RecordingPicker struct {
	Sizes []int
}

// Pick implements the picker signature
func (p *RecordingPicker) Pick(n int) int {
	p.Sizes = append(p.Sizes, n)
	return 0
}
