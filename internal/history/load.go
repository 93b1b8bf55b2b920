package history

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// EnvHistFile names the environment variable holding the history path.
const EnvHistFile = "HISTFILE"

// DefaultFileName is the file looked up in the home directory when
// HISTFILE is not set.
const DefaultFileName = ".zsh_history"

// DefaultPath returns $HOME/.zsh_history.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, DefaultFileName), nil
}

// ResolvePath picks the history file: an explicit override first, then
// $HISTFILE, then DefaultPath. A leading ~ and $VARS are expanded.
func ResolvePath(override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return expandPath(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistFile)); v != "" {
		return expandPath(v)
	}
	return DefaultPath()
}

func expandPath(p string) (string, error) {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Clean(p), nil
}

// Load reads the whole history file at path and decodes it. Read
// failures wrap ErrSourceUnavailable. A nil decoder means
// MetaDecoder.
func Load(path string, dec Decoder) ([]string, error) {
	if dec == nil {
		dec = MetaDecoder{}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "%s: read history %s", ErrSourceUnavailable, path), ErrSourceUnavailable)
		return nil, errors.WithHintf(err, "set %s or pass --histfile to point at a readable history file", EnvHistFile)
	}
	lines, err := dec.Decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decode history %s with %s decoder", path, dec.Name())
	}
	return lines, nil
}
