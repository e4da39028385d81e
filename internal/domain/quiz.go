package domain

import "fmt"

// Direction selects which side of a word entry is the prompt
type Direction string

const (
	// DirectionFirst prompts with the word set's language, expects English
	DirectionFirst Direction = "first"
	// DirectionSecond prompts with English, expects the word set's language
	DirectionSecond Direction = "second"
)

// DefaultDirection is applied on start and manual reset
const DefaultDirection = DirectionFirst

// ParseDirection validates a raw direction value.
// An empty value yields the default direction.
func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(raw); d {
	case "":
		return DefaultDirection, nil
	case DirectionFirst, DirectionSecond:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, raw)
}

// Mode is a selectable test direction with its display label
type Mode struct {
	Label string
	Value Direction
}

// QuizItem is a single prompt/answer card of a session
type QuizItem struct {
	ID         int
	Prompt     string
	Answer     string
	Group      string
	Unanswered bool
	Presenting bool
}

// QuizItemGroup is a category filter over quiz items
type QuizItemGroup struct {
	Value  string
	Active bool
}

// Feedback holds the prompt and expected answer of the last wrong attempt
type Feedback struct {
	Prompt string
	Answer string
}

// Text returns the message shown after a wrong attempt
func (f *Feedback) Text() string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("Wrong! %s is %s.", f.Prompt, f.Answer)
}

// Session is the full state of one quiz.
// Sessions are treated as values: transitions return a modified clone.
type Session struct {
	WordSet   string
	Direction Direction
	Modes     []Mode
	Items     []QuizItem
	Groups    []QuizItemGroup
	LastError *Feedback
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	out := *s
	out.Modes = append([]Mode(nil), s.Modes...)
	out.Items = append([]QuizItem(nil), s.Items...)
	out.Groups = append([]QuizItemGroup(nil), s.Groups...)
	if s.LastError != nil {
		fb := *s.LastError
		out.LastError = &fb
	}
	return &out
}

// ActiveGroups returns the set of active group values
func (s *Session) ActiveGroups() map[string]bool {
	active := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		if g.Active {
			active[g.Value] = true
		}
	}
	return active
}

// GroupIndex returns the position of the group with the given value
func (s *Session) GroupIndex(value string) (int, bool) {
	for i, g := range s.Groups {
		if g.Value == value {
			return i, true
		}
	}
	return -1, false
}

// Pool returns indexes of items that are unanswered and in an active group
func (s *Session) Pool() []int {
	active := s.ActiveGroups()
	var pool []int
	for i, item := range s.Items {
		if item.Unanswered && active[item.Group] {
			pool = append(pool, i)
		}
	}
	return pool
}

// PresentingIndex returns the index of the presenting item
func (s *Session) PresentingIndex() (int, bool) {
	for i, item := range s.Items {
		if item.Presenting {
			return i, true
		}
	}
	return -1, false
}

// Presenting returns the item currently awaiting an answer
func (s *Session) Presenting() (QuizItem, bool) {
	i, ok := s.PresentingIndex()
	if !ok {
		return QuizItem{}, false
	}
	return s.Items[i], true
}

// Remaining counts unanswered items in active groups
func (s *Session) Remaining() int {
	return len(s.Pool())
}

// Done reports whether no eligible item is left under the current group filter
func (s *Session) Done() bool {
	return len(s.ActiveGroups()) == 0 || s.Remaining() == 0
}

// View is everything a rendering layer needs to draw a session
type View struct {
	WordSet   string
	WordSets  []string
	Modes     []Mode
	Direction Direction
	Groups    []QuizItemGroup
	Prompt    string
	Remaining int
	Feedback  string
	Done      bool
}
