package domain

import "errors"

var (
	// ErrUnsupportedWordSet is returned for an unknown word set identifier
	// or a word set without a language label
	ErrUnsupportedWordSet = errors.New("unsupported vocabulary set")

	// ErrInvalidDirection is returned for a direction outside first/second
	ErrInvalidDirection = errors.New("invalid direction, must be 'first' or 'second'")

	// ErrNoPresentingItem is returned when an answer arrives while nothing is presented
	ErrNoPresentingItem = errors.New("no item is presenting")

	// ErrGroupNotFound is returned when a toggle names an unknown group
	ErrGroupNotFound = errors.New("group not found")
)
