package picker

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/baaaaaaaka/histpick/internal/history"
)

// View is everything a renderer needs for one frame. Selected is -1 when
// Results is empty.
type View struct {
	Mode     Mode
	Query    string
	Results  []string
	Selected int
}

// SelectedCommand returns the highlighted entry, or "" when there is none.
func (v View) SelectedCommand() string {
	if v.Selected < 0 || v.Selected >= len(v.Results) {
		return ""
	}
	return v.Results[v.Selected]
}

// Renderer draws a View.
type Renderer interface {
	Draw(View) error
}

// EventSource blocks until the next key is available.
type EventSource interface {
	Next(ctx context.Context) (Key, error)
}

// Result is what a session produced. Committed is false when the user
// quit; Command may be empty even when committed.
type Result struct {
	Command   string
	Committed bool
}

// Controller owns the state of one picker session and keeps the result
// list in sync with the query.
type Controller struct {
	searcher *history.Searcher
	state    State
	results  []string
}

// NewController starts a session over lines (oldest first) with an
// optional initial query.
func NewController(lines []string, query string) *Controller {
	c := &Controller{
		searcher: history.NewSearcher(lines),
		state:    NewState(query),
	}
	c.refresh()
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Results() []string { return c.results }

func (c *Controller) View() View {
	selected := -1
	if len(c.results) > 0 {
		selected = c.state.Selected
	}
	return View{
		Mode:     c.state.Mode,
		Query:    c.state.Query,
		Results:  c.results,
		Selected: selected,
	}
}

// Handle applies k and recomputes the results if the query changed.
func (c *Controller) Handle(k Key) Outcome {
	query := c.state.Query
	outcome := c.state.Apply(k, len(c.results))
	if c.state.Query != query {
		c.refresh()
	}
	return outcome
}

func (c *Controller) refresh() {
	c.results = c.searcher.Search(c.state.Query)
	c.state.Clamp(len(c.results))
}

// Run draws, waits for a key, applies it and redraws until the user
// commits or quits. A failing source or renderer ends the session with
// no committed output. Cancelling ctx does the same and returns ctx.Err().
func (c *Controller) Run(ctx context.Context, src EventSource, r Renderer) (Result, error) {
	if src == nil || r == nil {
		return Result{}, errors.New("picker: event source and renderer are required")
	}
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := r.Draw(c.View()); err != nil {
			return Result{}, errors.Wrap(err, "draw picker")
		}
		k, err := src.Next(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			return Result{}, errors.Wrap(err, "read key event")
		}
		switch c.Handle(k) {
		case Commit:
			return Result{Command: c.View().SelectedCommand(), Committed: true}, nil
		case Quit:
			return Result{}, nil
		}
	}
}

// Run is shorthand for NewController(lines, "").Run(ctx, src, r).
func Run(ctx context.Context, lines []string, src EventSource, r Renderer) (Result, error) {
	return NewController(lines, "").Run(ctx, src, r)
}
