package history

import "strings"

// metaByte is the zsh Meta character. zsh stores bytes that would be
// special to it as metaByte followed by the original byte XOR 32.
const metaByte = 0x83

// MetaDecoder undoes zsh metafication and reads the result as UTF-8,
// replacing invalid sequences. It never fails.
type MetaDecoder struct{}

func (MetaDecoder) Name() string { return DecoderMeta }

func (MetaDecoder) Decode(raw []byte) ([]string, error) {
	text := strings.ToValidUTF8(string(Unmetafy(raw)), "\uFFFD")
	return splitLines(text), nil
}

// Unmetafy removes every metaByte and XORs the byte that followed it with
// 32. The buffer is processed from the end backwards, so a sentinel that
// follows another sentinel is consumed before the earlier one is seen.
// A trailing sentinel with nothing after it is dropped. raw is not
// modified.
func Unmetafy(raw []byte) []byte {
	// Walking backwards, the byte that follows position i in the
	// partially processed buffer is always the last one appended to rev.
	rev := make([]byte, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] != metaByte {
			rev = append(rev, raw[i])
			continue
		}
		if n := len(rev); n > 0 {
			rev[n-1] ^= 32
		}
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
