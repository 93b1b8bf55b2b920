// Package config persists user preferences for histpick.
package config

const CurrentVersion = 1

// Config holds the saved defaults. Empty fields fall back to the
// environment and built-in defaults.
type Config struct {
	Version  int    `json:"version"`
	HistFile string `json:"histFile,omitempty"`
	Decoder  string `json:"decoder,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Lossy    *bool  `json:"lossy,omitempty"`
}
