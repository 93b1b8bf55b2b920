package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	KeyHistFile = "histfile"
	KeyDecoder  = "decoder"
	KeyEncoding = "encoding"
	KeyLossy    = "lossy"
)

// ErrUnknownKey is returned for keys Get and Set do not recognize.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{KeyHistFile, KeyDecoder, KeyEncoding, KeyLossy}
}

// Get returns the stored value for key, or "" when it is unset.
func (c Config) Get(key string) (string, error) {
	switch normalizeKey(key) {
	case KeyHistFile:
		return c.HistFile, nil
	case KeyDecoder:
		return c.Decoder, nil
	case KeyEncoding:
		return c.Encoding, nil
	case KeyLossy:
		if c.Lossy == nil {
			return "", nil
		}
		return strconv.FormatBool(*c.Lossy), nil
	}
	return "", unknownKey(key)
}

// Set stores value under key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch normalizeKey(key) {
	case KeyHistFile:
		c.HistFile = value
	case KeyDecoder:
		c.Decoder = strings.ToLower(value)
	case KeyEncoding:
		c.Encoding = value
	case KeyLossy:
		if value == "" {
			c.Lossy = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "parse %s", KeyLossy)
		}
		c.Lossy = &b
	default:
		return unknownKey(key)
	}
	return nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "hist-file" || key == "hist_file" {
		return KeyHistFile
	}
	return key
}

func unknownKey(key string) error {
	err := errors.Mark(errors.Newf("unknown config key %q", key), ErrUnknownKey)
	return errors.WithHintf(err, "valid keys: %s", strings.Join(Keys(), ", "))
}
