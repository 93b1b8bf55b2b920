package picker

// KeyKind classifies an input event after the terminal layer has
// translated it.
type KeyKind int

const (
	// KeyNone is a non-key event such as a resize. It changes nothing
	// but still triggers a redraw.
	KeyNone KeyKind = iota
	KeyRune
	KeyBackspace
	KeyEnter
	KeyUp
	KeyDown
	// KeyQuit is an unconditional abort (Ctrl+C, Esc) honored in every
	// mode.
	KeyQuit
)

func (k KeyKind) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Key is a single input event. Rune is set only for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey returns the event for a typed character.
func RuneKey(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

func (k Key) String() string {
	if k.Kind == KeyRune {
		return "rune(" + string(k.Rune) + ")"
	}
	return k.Kind.String()
}
