package picker

import (
	"context"
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
)

var exampleHistory = []string{"ls -la", "cd /tmp;ls -la", "echo hi", "git commit -m fix;"}

type scriptedSource struct {
	keys []Key
	err  error
}

func (s *scriptedSource) Next(ctx context.Context) (Key, error) {
	if len(s.keys) == 0 {
		if s.err != nil {
			return Key{}, s.err
		}
		return Key{}, errors.New("script exhausted")
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

type recordingRenderer struct {
	views []View
	err   error
}

func (r *recordingRenderer) Draw(v View) error {
	r.views = append(r.views, v)
	return r.err
}

func (r *recordingRenderer) last() View { return r.views[len(r.views)-1] }

func keys(ks ...Key) *scriptedSource { return &scriptedSource{keys: ks} }

func typed(s string) []Key {
	out := make([]Key, 0, len(s))
	for _, r := range s {
		out = append(out, RuneKey(r))
	}
	return out
}

func TestRunCommitsSelection(t *testing.T) {
	r := &recordingRenderer{}
	res, err := Run(context.Background(), exampleHistory, keys(Key{Kind: KeyDown}, Key{Kind: KeyEnter}), r)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Committed || res.Command != "echo hi" {
		t.Fatalf("unexpected result: %#v", res)
	}
	if len(r.views) != 2 {
		t.Fatalf("expected a draw per key, got %d", len(r.views))
	}
	first := r.views[0]
	want := []string{"git commit -m fix", "echo hi", "ls -la"}
	if first.Mode != Browsing || first.Selected != 0 || !reflect.DeepEqual(first.Results, want) {
		t.Fatalf("unexpected first view: %#v", first)
	}
	if r.last().Selected != 1 {
		t.Fatalf("expected selection 1 before commit, got %d", r.last().Selected)
	}
}

func TestRunQuitProducesNoOutput(t *testing.T) {
	res, err := Run(context.Background(), exampleHistory, keys(Key{Kind: KeyDown}, RuneKey('q')), &recordingRenderer{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Committed || res.Command != "" {
		t.Fatalf("expected no output on quit, got %#v", res)
	}
}

func TestRunCommitWithNoResults(t *testing.T) {
	script := append([]Key{RuneKey('e')}, typed("zzz")...)
	script = append(script, Key{Kind: KeyEnter}, Key{Kind: KeyDown}, Key{Kind: KeyUp}, Key{Kind: KeyEnter})
	r := &recordingRenderer{}
	res, err := Run(context.Background(), exampleHistory, keys(script...), r)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Committed || res.Command != "" {
		t.Fatalf("expected empty committed output, got %#v", res)
	}
	if v := r.last(); len(v.Results) != 0 || v.Selected != -1 {
		t.Fatalf("expected empty view with no selection, got %#v", v)
	}
}

func TestRunEditingFiltersResults(t *testing.T) {
	script := append([]Key{RuneKey('e')}, typed("git")...)
	script = append(script, Key{Kind: KeyEnter}, Key{Kind: KeyEnter})
	r := &recordingRenderer{}
	res, err := Run(context.Background(), exampleHistory, keys(script...), r)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Command != "git commit -m fix" {
		t.Fatalf("unexpected command %q", res.Command)
	}
	editing := r.views[2]
	if editing.Mode != Editing || editing.Query != "g" {
		t.Fatalf("unexpected view while typing: %#v", editing)
	}
	last := r.last()
	if last.Mode != Browsing || last.Query != "git" || !reflect.DeepEqual(last.Results, []string{"git commit -m fix"}) {
		t.Fatalf("unexpected view after freezing query: %#v", last)
	}
}

func TestRunSourceErrorIsFatal(t *testing.T) {
	boom := errors.New("tty gone")
	res, err := Run(context.Background(), exampleHistory, &scriptedSource{keys: []Key{{Kind: KeyDown}}, err: boom}, &recordingRenderer{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if res.Committed || res.Command != "" {
		t.Fatalf("expected no output, got %#v", res)
	}
}

func TestRunRendererErrorIsFatal(t *testing.T) {
	boom := errors.New("draw failed")
	_, err := Run(context.Background(), exampleHistory, keys(Key{Kind: KeyEnter}), &recordingRenderer{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, exampleHistory, keys(Key{Kind: KeyEnter}), &recordingRenderer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Committed {
		t.Fatalf("expected no commit")
	}
}

func TestRunRequiresCollaborators(t *testing.T) {
	if _, err := Run(context.Background(), nil, nil, &recordingRenderer{}); err == nil {
		t.Fatalf("expected error without event source")
	}
}

func TestControllerInitialQuery(t *testing.T) {
	c := NewController(exampleHistory, "ls")
	v := c.View()
	if v.Query != "ls" || !reflect.DeepEqual(v.Results, []string{"ls -la"}) {
		t.Fatalf("unexpected view: %#v", v)
	}
}

func TestControllerResizeOnlyRedraws(t *testing.T) {
	c := NewController(exampleHistory, "")
	c.Handle(Key{Kind: KeyDown})
	before := c.View()
	if got := c.Handle(Key{Kind: KeyNone}); got != Continue {
		t.Fatalf("expected Continue, got %v", got)
	}
	if !reflect.DeepEqual(before, c.View()) {
		t.Fatalf("expected unchanged view")
	}
}

func TestControllerCommitMatchesSelectedEntry(t *testing.T) {
	c := NewController(exampleHistory, "")
	n := len(c.Results())
	for i := 0; i < n; i++ {
		v := c.View()
		if got := v.SelectedCommand(); got != v.Results[v.Selected] {
			t.Fatalf("selected %q want %q", got, v.Results[v.Selected])
		}
		c.Handle(Key{Kind: KeyDown})
	}
	if c.State().Selected != 0 {
		t.Fatalf("expected to cycle back to 0, got %d", c.State().Selected)
	}
}
