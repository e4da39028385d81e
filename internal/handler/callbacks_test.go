package handler

import (
	"fmt"
	"strings"
	"testing"

	"vocabquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "group_1",
			expected: "group_1",
		},
		{
			name:     "string with whitespace",
			input:    "  group_1  ",
			expected: "group_1",
		},
		{
			name:     "telebot unique prefix",
			input:    "\fdir_second",
			expected: "dir_second",
		},
		{
			name:     "string with newline",
			input:    "dir\n_first",
			expected: "dir_first",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "reset\x00\x01",
			expected: "reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name           string
		data           string
		expectedAction string
		expectedArg    string
	}{
		{name: "direction", data: "dir_second", expectedAction: actionDirection, expectedArg: "second"},
		{name: "group value", data: "group_ice_cream", expectedAction: actionGroup, expectedArg: "ice_cream"},
		{name: "group position", data: "groupat_12_japanese", expectedAction: actionGroupAt, expectedArg: "12_japanese"},
		{name: "word set", data: "wordset_chinese", expectedAction: actionWordSet, expectedArg: "chinese"},
		{name: "reset", data: "reset", expectedAction: actionReset, expectedArg: ""},
		{name: "argument keeps later separators", data: "wordset_my_set", expectedAction: actionWordSet, expectedArg: "my_set"},
		{name: "empty", data: "", expectedAction: "", expectedArg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, arg := parseCallback(tt.data)
			assert.Equal(t, tt.expectedAction, action)
			assert.Equal(t, tt.expectedArg, arg)
		})
	}
}

func TestGroupCallback(t *testing.T) {
	tests := []struct {
		name     string
		wordSet  string
		index    int
		value    string
		expected string
	}{
		{name: "short value", wordSet: "japanese", index: 0, value: "numbers", expected: "group_numbers"},
		{name: "non-latin value", wordSet: "chinese", index: 2, value: "数字", expected: "group_数字"},
		{name: "value at the limit", wordSet: "japanese", index: 1, value: strings.Repeat("a", 57), expected: "group_" + strings.Repeat("a", 57)},
		{name: "value over the limit", wordSet: "japanese", index: 1, value: strings.Repeat("a", 58), expected: "groupat_1_japanese"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := groupCallback(tt.wordSet, tt.index, tt.value)
			assert.Equal(t, tt.expected, data)
			assert.LessOrEqual(t, len(data)+1, maxCallbackData)
		})
	}
}

func TestInvalidRequestText(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "unknown word set", err: fmt.Errorf("failed to load word set: %w", domain.ErrUnsupportedWordSet), expected: msgUnknownWordSet},
		{name: "invalid direction", err: domain.ErrInvalidDirection, expected: msgUnknownDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, invalidRequestText(tt.err))
		})
	}
}
