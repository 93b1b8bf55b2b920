package history

import (
	"reflect"
	"strings"
	"testing"
)

var sampleHistory = []string{"ls -la", "cd /tmp;ls -la", "echo hi", "git commit -m fix;"}

func TestCommand(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{line: "ls -la", want: "ls -la"},
		{line: ": 1700000000:0;git status", want: "git status"},
		{line: "cd /tmp;ls -la", want: "ls -la"},
		{line: "a;b;c", want: "c"},
		{line: "git commit -m fix;", want: ""},
		{line: "", want: ""},
	}
	for _, tc := range cases {
		if got := Command(tc.line); got != tc.want {
			t.Fatalf("Command(%q)=%q want %q", tc.line, got, tc.want)
		}
	}
}

func TestFilterEmptyQueryListsEverythingMostRecentFirst(t *testing.T) {
	got := Filter(sampleHistory, "")
	want := []string{"git commit -m fix", "echo hi", "ls -la"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterSingleTerm(t *testing.T) {
	got := Filter(sampleHistory, "git")
	want := []string{"git commit -m fix"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterMatchesRawLineNotCommand(t *testing.T) {
	got := Filter(sampleHistory, "/tmp")
	want := []string{"ls -la"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterAndTermsAreOrderIndependent(t *testing.T) {
	lines := []string{"alpha beta", "beta only", "alpha only", "beta then alpha"}
	ab := Filter(lines, "alpha&beta")
	ba := Filter(lines, "beta&alpha")
	want := []string{"beta then alpha", "alpha beta"}
	if !reflect.DeepEqual(ab, want) {
		t.Fatalf("alpha&beta=%#v want %#v", ab, want)
	}
	if !reflect.DeepEqual(ba, want) {
		t.Fatalf("beta&alpha=%#v want %#v", ba, want)
	}
	for _, line := range lines {
		in := contains(ab, line)
		both := strings.Contains(line, "alpha") && strings.Contains(line, "beta")
		if in != both {
			t.Fatalf("line %q listed=%v but contains both=%v", line, in, both)
		}
	}
}

func TestFilterIsCaseSensitive(t *testing.T) {
	if got := Filter([]string{"Make build"}, "make"); len(got) != 0 {
		t.Fatalf("expected no match, got %#v", got)
	}
}

func TestFilterTrailingTermSeparatorMatchesAll(t *testing.T) {
	got := Filter([]string{"one", "two"}, "o&")
	want := []string{"two", "one"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterDedupKeepsMostRecent(t *testing.T) {
	lines := []string{": 1:0;make", ": 2:0;go test", ": 3:0;make"}
	got := Filter(lines, "")
	want := []string{"make", "go test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterSkipsEmptyAndSeparatorOnlyLines(t *testing.T) {
	got := Filter([]string{"", ";", ": 1700000000:0;", ": 1700000001:0;;", "pwd", ""}, "")
	want := []string{"pwd"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterTrailingSeparatorAfterHeader(t *testing.T) {
	got := Filter([]string{": 1700000000:0;git commit -m fix;", "git push;"}, "")
	want := []string{"git push", "git commit -m fix"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter=%#v want %#v", got, want)
	}
}

func TestFilterNoHistory(t *testing.T) {
	if got := Filter(nil, "x"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestSearcherReusesLastResult(t *testing.T) {
	s := NewSearcher(sampleHistory)
	if s.Len() != len(sampleHistory) {
		t.Fatalf("Len=%d", s.Len())
	}
	first := s.Search("ls")
	second := s.Search("ls")
	if len(first) == 0 || &first[0] != &second[0] {
		t.Fatalf("expected memoized slice, got %#v and %#v", first, second)
	}
	if got := s.Search("echo"); !reflect.DeepEqual(got, []string{"echo hi"}) {
		t.Fatalf("Search(echo)=%#v", got)
	}
	if got := s.Search("ls"); !reflect.DeepEqual(got, Filter(sampleHistory, "ls")) {
		t.Fatalf("Search(ls)=%#v", got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
