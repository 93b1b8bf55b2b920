// Package tui renders the picker with tcell and turns terminal events
// into picker keys.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/histpick/internal/picker"
)

// ErrClosed is returned by Next once the screen has been finalized.
var ErrClosed = errors.New("terminal closed")

var newScreen = tcell.NewScreen

const (
	browsingHint = " q: Exit  e: Input"
	editingHint  = " Enter: stop input"
	inputTitle   = "Input"
	listTitle    = "History Command"
	inputHeight  = 3
)

type Options struct {
	// Version is shown at the right end of the hint line when set.
	Version string
}

// Screen is a picker.Renderer and picker.EventSource backed by a tcell
// screen.
type Screen struct {
	screen tcell.Screen
	opts   Options
	list   listState
}

type rect struct {
	y int
	x int
	h int
	w int
}

type layout struct {
	hint  rect
	input rect
	list  rect
}

type listState struct {
	selected int
	scroll   int
}

type row struct {
	label    string
	selected bool
	focused  bool
}

// Open initializes the terminal. Callers must Close the screen to
// restore it.
func Open(opts Options) (*Screen, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	return NewScreen(screen, opts), nil
}

// NewScreen wraps an already initialized tcell screen.
func NewScreen(screen tcell.Screen, opts Options) *Screen {
	return &Screen{screen: screen, opts: opts}
}

func (s *Screen) Close() {
	s.screen.Fini()
}

// Draw renders one frame for v.
func (s *Screen) Draw(v picker.View) error {
	screen := s.screen
	screen.Clear()
	l := computeLayout(screen)

	editing := v.Mode == picker.Editing
	drawHint(screen, l.hint, v.Mode, s.opts.Version)

	drawBox(screen, l.input, inputTitle, editing)
	cursorX := drawInput(screen, l.input, v.Query)
	if editing && l.input.h >= inputHeight {
		screen.ShowCursor(cursorX, l.input.y+1)
	} else {
		screen.HideCursor()
	}

	title := listTitle
	if len(v.Results) > 0 {
		title = listTitle + " (" + strconv.Itoa(len(v.Results)) + ")"
	}
	drawBox(screen, l.list, title, !editing)
	viewH := max(0, l.list.h-2)
	if v.Selected >= 0 {
		s.list.selected = v.Selected
	}
	s.list.clamp(len(v.Results))
	s.list.ensureVisible(viewH, len(v.Results))
	drawList(screen, l.list, renderRows(v.Results, v.Selected >= 0, !editing, s.list, viewH))

	screen.Show()
	return nil
}

// Next blocks until a key is pressed, the terminal is resized or ctx is
// done. Resizes are reported as picker.KeyNone.
func (s *Screen) Next(ctx context.Context) (picker.Key, error) {
	if err := ctx.Err(); err != nil {
		return picker.Key{}, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return picker.Key{}, ErrClosed
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return picker.Key{}, err
			}
		case *tcell.EventResize:
			s.screen.Sync()
			return picker.Key{Kind: picker.KeyNone}, nil
		case *tcell.EventKey:
			return translate(tev), nil
		}
	}
}

func translate(ev *tcell.EventKey) picker.Key {
	enterPressed := ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyCtrlJ || ev.Key() == tcell.KeyCtrlM
	if ev.Key() == tcell.KeyRune && (ev.Rune() == '\n' || ev.Rune() == '\r') {
		enterPressed = true
	}
	if enterPressed {
		return picker.Key{Kind: picker.KeyEnter}
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return picker.Key{Kind: picker.KeyUp}
	case tcell.KeyDown:
		return picker.Key{Kind: picker.KeyDown}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return picker.Key{Kind: picker.KeyBackspace}
	case tcell.KeyCtrlC, tcell.KeyESC:
		return picker.Key{Kind: picker.KeyQuit}
	case tcell.KeyRune:
		return picker.RuneKey(ev.Rune())
	}
	return picker.Key{Kind: picker.KeyNone}
}

func computeLayout(screen tcell.Screen) layout {
	maxX, maxY := screen.Size()
	hintH := min(1, maxY)
	inputH := clamp(maxY-hintH, 0, inputHeight)
	listH := max(0, maxY-hintH-inputH)
	return layout{
		hint:  rect{y: 0, x: 0, h: hintH, w: maxX},
		input: rect{y: hintH, x: 0, h: inputH, w: maxX},
		list:  rect{y: hintH + inputH, x: 0, h: listH, w: maxX},
	}
}

func drawHint(screen tcell.Screen, r rect, mode picker.Mode, version string) {
	if r.h <= 0 || r.w <= 0 {
		return
	}
	hint := browsingHint
	if mode == picker.Editing {
		hint = editingHint
	}
	writeText(screen, r.x, r.y, truncate(hint, r.w), tcell.StyleDefault.Bold(true))

	if version == "" {
		return
	}
	label := versionLabel(version) + " "
	if displayWidth(hint)+displayWidth(label)+1 > r.w {
		return
	}
	writeText(screen, r.x+r.w-displayWidth(label), r.y, label, tcell.StyleDefault.Dim(true))
}

// drawInput writes the query inside the input box and returns the
// column just after its last character. Queries wider than the box
// show their tail.
func drawInput(screen tcell.Screen, r rect, query string) int {
	innerW := r.w - 2
	if r.h < inputHeight || innerW <= 0 {
		return r.x
	}
	shown := tail(query, innerW-1)
	writeText(screen, r.x+1, r.y+1, padRight(shown, innerW), tcell.StyleDefault)
	return r.x + 1 + displayWidth(shown)
}

func renderRows(items []string, hasSelection bool, focused bool, state listState, viewH int) []row {
	rows := make([]row, 0, min(len(items), viewH))
	start := clamp(state.scroll, 0, max(0, len(items)))
	end := min(len(items), start+max(0, viewH))
	for i := start; i < end; i++ {
		rows = append(rows, row{label: sanitize(items[i])})
	}
	if !hasSelection {
		return rows
	}
	return applySelection(rows, focused, listState{selected: state.selected - start})
}

func applySelection(rows []row, focused bool, state listState) []row {
	if len(rows) == 0 {
		return rows
	}
	state.clamp(len(rows))
	rows[state.selected].selected = true
	rows[state.selected].focused = focused
	return rows
}

func (s *listState) clamp(nItems int) {
	if nItems <= 0 {
		s.selected = 0
		s.scroll = 0
		return
	}
	s.selected = clamp(s.selected, 0, nItems-1)
	s.scroll = clamp(s.scroll, 0, max(0, nItems-1))
}

func (s *listState) ensureVisible(viewH int, nItems int) {
	if nItems <= 0 || viewH <= 0 {
		s.scroll = 0
		return
	}
	maxScroll := max(0, nItems-viewH)
	if s.selected < s.scroll {
		s.scroll = s.selected
	} else if s.selected >= s.scroll+viewH {
		s.scroll = s.selected - viewH + 1
	}
	s.scroll = clamp(s.scroll, 0, maxScroll)
}

func drawBox(screen tcell.Screen, r rect, title string, focused bool) {
	if r.w < 2 || r.h < 2 {
		return
	}
	borderStyle := tcell.StyleDefault
	if focused {
		borderStyle = borderStyle.Bold(true)
	} else {
		borderStyle = borderStyle.Dim(true)
	}
	h := tcell.RuneHLine
	v := tcell.RuneVLine
	for x := r.x + 1; x < r.x+r.w-1; x++ {
		screen.SetContent(x, r.y, h, nil, borderStyle)
		screen.SetContent(x, r.y+r.h-1, h, nil, borderStyle)
	}
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		screen.SetContent(r.x, y, v, nil, borderStyle)
		screen.SetContent(r.x+r.w-1, y, v, nil, borderStyle)
	}
	screen.SetContent(r.x, r.y, tcell.RuneULCorner, nil, borderStyle)
	screen.SetContent(r.x+r.w-1, r.y, tcell.RuneURCorner, nil, borderStyle)
	screen.SetContent(r.x, r.y+r.h-1, tcell.RuneLLCorner, nil, borderStyle)
	screen.SetContent(r.x+r.w-1, r.y+r.h-1, tcell.RuneLRCorner, nil, borderStyle)

	titleStyle := borderStyle
	if focused {
		titleStyle = titleStyle.Reverse(true)
	}
	title = truncate(" "+title+" ", max(0, r.w-4))
	writeText(screen, r.x+2, r.y, title, titleStyle)
}

func drawList(screen tcell.Screen, r rect, rows []row) {
	if r.h < 3 || r.w < 4 {
		return
	}
	innerH := r.h - 2
	innerW := r.w - 2
	for i := 0; i < innerH; i++ {
		y := r.y + 1 + i
		if i >= len(rows) {
			writeText(screen, r.x+1, y, padRight("", innerW), tcell.StyleDefault)
			continue
		}
		row := rows[i]
		style := tcell.StyleDefault
		if row.selected {
			style = style.Reverse(true)
			if row.focused {
				style = style.Bold(true)
			} else {
				style = style.Dim(true)
			}
		}
		writeText(screen, r.x+1, y, padRight(truncate(row.label, innerW), innerW), style)
	}
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
}

// sanitize replaces control characters with spaces.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	var buf strings.Builder
	curWidth := 0
	for _, ch := range s {
		chWidth := runewidth.RuneWidth(ch)
		if chWidth == 0 {
			buf.WriteRune(ch)
			continue
		}
		if curWidth+chWidth > width {
			break
		}
		buf.WriteRune(ch)
		curWidth += chWidth
	}
	return buf.String()
}

// tail keeps the rightmost runes of s that fit in width columns.
func tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	curWidth := 0
	i := len(runes)
	for i > 0 {
		chWidth := runewidth.RuneWidth(runes[i-1])
		if curWidth+chWidth > width {
			break
		}
		curWidth += chWidth
		i--
	}
	return string(runes[i:])
}

func padRight(s string, width int) string {
	if displayWidth(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-displayWidth(s))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func versionLabel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		v = "dev"
	}
	if strings.EqualFold(v, "dev") {
		return v
	}
	if strings.HasPrefix(strings.ToLower(v), "v") {
		return v
	}
	return "v" + v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
