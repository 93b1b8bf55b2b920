package history

import (
	"regexp"
	"strings"
)

const (
	// FieldSeparator splits history metadata from the command.
	FieldSeparator = ";"
	// TermSeparator splits a query into required substrings.
	TermSeparator = "&"
)

// extendedHeader matches the ": <start>:<elapsed>" prefix zsh writes
// before each command with EXTENDED_HISTORY.
var extendedHeader = regexp.MustCompile(`^: *[0-9]+:[0-9]+$`)

// Command returns the text after the last FieldSeparator, or the whole
// line when there is none.
func Command(line string) string {
	if i := strings.LastIndex(line, FieldSeparator); i >= 0 {
		return line[i+len(FieldSeparator):]
	}
	return line
}

// Terms splits a query on TermSeparator. The empty query yields a single
// empty term, which every line contains.
func Terms(query string) []string {
	return strings.Split(query, TermSeparator)
}

// Matches reports whether line contains every term (case-sensitive).
func Matches(line string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(line, term) {
			return false
		}
	}
	return true
}

// Filter returns the commands of the non-empty lines matching query,
// most recent first, each command once.
//
// A line ending in FieldSeparator has an empty final field; it is listed
// under the last non-empty field instead ("git commit -m fix;" lists as
// "git commit -m fix"). Lines made only of separators, or of a bare
// extended-history header, are skipped.
func Filter(lines []string, query string) []string {
	terms := Terms(query)
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if line == "" || !Matches(line, terms) {
			continue
		}
		cmd := listedCommand(line)
		if cmd == "" {
			continue
		}
		if _, dup := seen[cmd]; dup {
			continue
		}
		seen[cmd] = struct{}{}
		out = append(out, cmd)
	}
	return out
}

func listedCommand(line string) string {
	if cmd := Command(line); cmd != "" {
		return cmd
	}
	cmd := Command(strings.TrimRight(line, FieldSeparator))
	if extendedHeader.MatchString(cmd) {
		return ""
	}
	return cmd
}

// Searcher filters a fixed set of lines and remembers the last query, so
// redraws that do not change the query reuse the previous result. The
// returned slices are shared and must not be modified.
type Searcher struct {
	lines     []string
	lastQuery string
	last      []string
	primed    bool
}

func NewSearcher(lines []string) *Searcher {
	return &Searcher{lines: lines}
}

// Len returns the number of history lines being searched.
func (s *Searcher) Len() int { return len(s.lines) }

func (s *Searcher) Search(query string) []string {
	if s.primed && query == s.lastQuery {
		return s.last
	}
	s.last = Filter(s.lines, query)
	s.lastQuery = query
	s.primed = true
	return s.last
}
