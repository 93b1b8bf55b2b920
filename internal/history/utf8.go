package history

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// UTF8Decoder reads the history as UTF-8 text. In strict mode invalid
// input is an ErrInvalidEncoding error; with Lossy set invalid sequences
// become U+FFFD.
type UTF8Decoder struct {
	Lossy bool
}

func (UTF8Decoder) Name() string { return DecoderUTF8 }

func (d UTF8Decoder) Decode(raw []byte) ([]string, error) {
	if utf8.Valid(raw) {
		return splitLines(string(raw)), nil
	}
	if d.Lossy {
		return splitLines(strings.ToValidUTF8(string(raw), "\uFFFD")), nil
	}
	offset := firstInvalidOffset(raw)
	line := bytes.Count(raw[:offset], []byte{'\n'}) + 1
	err := errors.Newf("invalid UTF-8 at byte %d (line %d)", offset, line)
	err = errors.Mark(err, ErrInvalidEncoding)
	return nil, errors.WithHint(err, "use the meta or charmap decoder, or enable lossy decoding")
}

func firstInvalidOffset(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(raw)
}
