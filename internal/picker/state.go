// Package picker holds the interactive selection logic: the mode and
// cursor state machine and the loop that drives it from key events.
package picker

import (
	"unicode"
	"unicode/utf8"
)

// Mode is the input mode of the picker.
type Mode int

const (
	// Browsing is the initial mode: keys navigate and commit.
	Browsing Mode = iota
	// Editing routes printable keys into the query.
	Editing
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Outcome reports whether a key ended the session.
type Outcome int

const (
	Continue Outcome = iota
	Commit
	Quit
)

const (
	editKey = 'e'
	quitKey = 'q'
)

// State is the mutable part of a picker session. Selected indexes the
// current result list and is meaningful only while that list is
// non-empty.
type State struct {
	Mode     Mode
	Query    string
	Selected int
}

// NewState returns the initial state: browsing with the given query.
func NewState(query string) State {
	return State{Mode: Browsing, Query: query}
}

// Apply feeds one key to the state machine. n is the length of the
// result list the key was pressed against. Navigation with no results
// does nothing.
func (s *State) Apply(k Key, n int) Outcome {
	if k.Kind == KeyQuit {
		return Quit
	}
	if s.Mode == Editing {
		s.applyEditing(k)
		return Continue
	}

	switch k.Kind {
	case KeyRune:
		switch k.Rune {
		case editKey:
			s.Mode = Editing
		case quitKey:
			return Quit
		}
	case KeyUp:
		if n > 0 {
			s.Selected = (s.Selected - 1 + n) % n
		}
	case KeyDown:
		if n > 0 {
			s.Selected = (s.Selected + 1) % n
		}
	case KeyEnter:
		return Commit
	}
	return Continue
}

func (s *State) applyEditing(k Key) {
	switch k.Kind {
	case KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return
		}
		s.Query += string(k.Rune)
		s.Selected = 0
	case KeyBackspace:
		if s.Query == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(s.Query)
		s.Query = s.Query[:len(s.Query)-size]
		s.Selected = 0
	case KeyEnter:
		s.Mode = Browsing
		s.Selected = 0
	}
}

// Clamp keeps Selected inside a result list of length n.
func (s *State) Clamp(n int) {
	if n <= 0 || s.Selected < 0 {
		s.Selected = 0
		return
	}
	if s.Selected >= n {
		s.Selected = n - 1
	}
}
