package cli

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/histpick/internal/config"
	"github.com/baaaaaaaka/histpick/internal/history"
)

const (
	envDecoder  = "HISTPICK_DECODER"
	envEncoding = "HISTPICK_ENCODING"
	envLossy    = "HISTPICK_LOSSY"
)

const (
	sourceFlag    = "flag"
	sourceEnv     = "env"
	sourceConfig  = "config"
	sourceDefault = "default"
)

// settings are the effective load options after applying flags, the
// environment, the config file and defaults, in that order.
type settings struct {
	histFile string
	decoder  string
	encoding string
	lossy    bool

	histFileSource string
	decoderSource  string
	encodingSource string
	lossySource    string
}

func resolveSettings(cmd *cobra.Command, root *rootOptions) (settings, error) {
	store, err := config.NewStore(root.configPath)
	if err != nil {
		return settings{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return settings{}, err
	}
	return resolveSettingsFrom(cmd, root, cfg)
}

func resolveSettingsFrom(cmd *cobra.Command, root *rootOptions, cfg config.Config) (settings, error) {
	var s settings

	histOverride := ""
	switch {
	case strings.TrimSpace(root.histFile) != "":
		histOverride, s.histFileSource = root.histFile, sourceFlag
	case strings.TrimSpace(os.Getenv(history.EnvHistFile)) != "":
		s.histFileSource = sourceEnv
	case strings.TrimSpace(cfg.HistFile) != "":
		histOverride, s.histFileSource = cfg.HistFile, sourceConfig
	default:
		s.histFileSource = sourceDefault
	}
	path, err := history.ResolvePath(histOverride)
	if err != nil {
		return settings{}, err
	}
	s.histFile = path

	s.decoder, s.decoderSource = pick(root.decoder, envDecoder, cfg.Decoder, history.DecoderMeta)
	s.encoding, s.encodingSource = pick(root.encoding, envEncoding, cfg.Encoding, history.DefaultEncoding)

	switch {
	case flagChanged(cmd, "lossy"):
		s.lossy, s.lossySource = root.lossy, sourceFlag
	case strings.TrimSpace(os.Getenv(envLossy)) != "":
		v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(envLossy)))
		if err != nil {
			return settings{}, errors.Wrapf(err, "parse %s", envLossy)
		}
		s.lossy, s.lossySource = v, sourceEnv
	case cfg.Lossy != nil:
		s.lossy, s.lossySource = *cfg.Lossy, sourceConfig
	default:
		s.lossySource = sourceDefault
	}

	return s, nil
}

func pick(flagValue, envName, cfgValue, def string) (string, string) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, sourceFlag
	}
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v, sourceEnv
	}
	if v := strings.TrimSpace(cfgValue); v != "" {
		return v, sourceConfig
	}
	return def, sourceDefault
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func (s settings) newDecoder() (history.Decoder, error) {
	return history.NewDecoder(s.decoder, history.DecoderOptions{
		Encoding: s.encoding,
		Lossy:    s.lossy,
	})
}

// loadHistory resolves settings, builds the decoder and reads the
// history file.
func loadHistory(cmd *cobra.Command, root *rootOptions) ([]string, error) {
	logger := root.log()
	s, err := resolveSettings(cmd, root)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved settings",
		"histfile", s.histFile, "histfileSource", s.histFileSource,
		"decoder", s.decoder, "decoderSource", s.decoderSource,
		"encoding", s.encoding, "encodingSource", s.encodingSource,
		"lossy", s.lossy, "lossySource", s.lossySource,
	)

	dec, err := s.newDecoder()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	lines, err := history.Load(s.histFile, dec)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded history", "path", s.histFile, "lines", len(lines), "elapsed", time.Since(start))
	if len(lines) == 0 {
		logger.Warn("history file is empty", "path", s.histFile)
	}
	return lines, nil
}
