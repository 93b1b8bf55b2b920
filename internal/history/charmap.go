package history

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncoding is the code page used when none is configured.
const DefaultEncoding = "iso-8859-1"

var encodingAliases = map[string]string{
	"latin1":   "iso88591",
	"latin9":   "iso885915",
	"cp1250":   "windows1250",
	"cp1251":   "windows1251",
	"cp1252":   "windows1252",
	"cp437":    "ibmcodepage437",
	"cp850":    "ibmcodepage850",
	"cp866":    "ibmcodepage866",
	"macroman": "macintosh",
}

// CharmapDecoder decodes a history file written in a single-byte code
// page. Every byte maps to a rune, so decoding never fails on content.
type CharmapDecoder struct {
	Encoding string
	charmap  *charmap.Charmap
}

// NewCharmapDecoder looks up the code page by name ("iso-8859-1",
// "windows-1252", "koi8-r", "cp437", ...). An empty name selects
// DefaultEncoding.
func NewCharmapDecoder(name string) (CharmapDecoder, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}
	cm, err := LookupEncoding(name)
	if err != nil {
		return CharmapDecoder{}, err
	}
	return CharmapDecoder{Encoding: cm.String(), charmap: cm}, nil
}

func (d CharmapDecoder) Name() string { return DecoderCharmap }

func (d CharmapDecoder) Decode(raw []byte) ([]string, error) {
	cm := d.charmap
	if cm == nil {
		var err error
		if cm, err = LookupEncoding(firstNonEmpty(d.Encoding, DefaultEncoding)); err != nil {
			return nil, err
		}
	}
	out, err := cm.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", cm.String())
	}
	return splitLines(string(out)), nil
}

// LookupEncoding resolves a code page name against the charmaps shipped
// with golang.org/x/text. Matching ignores case, spaces, dashes and
// underscores.
func LookupEncoding(name string) (*charmap.Charmap, error) {
	want := normalizeEncodingName(name)
	if alias, ok := encodingAliases[want]; ok {
		want = alias
	}
	for _, enc := range charmap.All {
		cm, ok := enc.(*charmap.Charmap)
		if !ok {
			continue
		}
		if normalizeEncodingName(cm.String()) == want {
			return cm, nil
		}
	}
	err := errors.Mark(errors.Newf("unknown encoding %q", name), ErrUnknownEncoding)
	return nil, errors.WithHintf(err, "known encodings: %s", strings.Join(EncodingNames(), ", "))
}

// EncodingNames lists the names of every supported single-byte code page.
func EncodingNames() []string {
	names := make([]string, 0, len(charmap.All))
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			names = append(names, cm.String())
		}
	}
	sort.Strings(names)
	return names
}

func normalizeEncodingName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
