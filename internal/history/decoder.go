// Package history loads shell history files and filters them into the
// command lists shown by the picker.
package history

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	DecoderMeta    = "meta"
	DecoderCharmap = "charmap"
	DecoderUTF8    = "utf8"
)

// Decoder turns the raw bytes of a history file into logical lines in
// file order (oldest first).
type Decoder interface {
	Name() string
	Decode(raw []byte) ([]string, error)
}

type DecoderOptions struct {
	// Encoding names the single-byte code page used by the charmap decoder.
	Encoding string
	// Lossy makes the utf8 decoder replace invalid sequences instead of failing.
	Lossy bool
}

var decoderAliases = map[string]string{
	DecoderMeta:    DecoderMeta,
	"zsh":          DecoderMeta,
	DecoderCharmap: DecoderCharmap,
	"legacy":       DecoderCharmap,
	DecoderUTF8:    DecoderUTF8,
	"utf-8":        DecoderUTF8,
	"raw":          DecoderUTF8,
}

// DecoderNames lists the canonical decoder names.
func DecoderNames() []string {
	return []string{DecoderMeta, DecoderCharmap, DecoderUTF8}
}

// NewDecoder returns the decoder registered under name. An empty name
// selects the meta decoder.
func NewDecoder(name string, opts DecoderOptions) (Decoder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DecoderMeta
	}
	switch decoderAliases[key] {
	case DecoderMeta:
		return MetaDecoder{}, nil
	case DecoderCharmap:
		return NewCharmapDecoder(opts.Encoding)
	case DecoderUTF8:
		return UTF8Decoder{Lossy: opts.Lossy}, nil
	}

	aliases := make([]string, 0, len(decoderAliases))
	for alias := range decoderAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	err := errors.Mark(errors.Newf("unknown decoder %q", name), ErrUnknownDecoder)
	return nil, errors.WithHintf(err, "valid decoders: %s", strings.Join(aliases, ", "))
}

// splitLines splits decoded text the way line-oriented readers do: a
// trailing newline does not start a new line and CRLF endings lose the CR.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}
