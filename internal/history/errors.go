package history

import "github.com/cockroachdb/errors"

var (
	// ErrSourceUnavailable marks failures to read the history file.
	ErrSourceUnavailable = errors.New("history source unavailable")
	// ErrInvalidEncoding marks strict UTF-8 decode failures.
	ErrInvalidEncoding = errors.New("invalid history encoding")
	ErrUnknownDecoder  = errors.New("unknown history decoder")
	ErrUnknownEncoding = errors.New("unknown history encoding")
)
