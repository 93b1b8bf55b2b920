package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "HISTPICK_CONFIG"

// Store reads and writes the config file. A process mutex and an
// advisory file lock serialize access across goroutines and processes.
type Store struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "get user config dir")
	}
	return filepath.Join(base, "histpick", "config.json"), nil
}

func NewStore(pathOverride string) (*Store, error) {
	path := pathOverride
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

func (s *Store) Path() string { return s.path }

// Load returns the saved config. A missing file yields an empty config
// without creating anything on disk.
func (s *Store) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return Config{Version: CurrentVersion}, nil
	}

	if err := s.lock.RLock(); err != nil {
		return Config{}, errors.Wrap(err, "lock config")
	}
	defer func() { _ = s.lock.Unlock() }()

	return s.loadUnlocked()
}

func (s *Store) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return errors.Wrap(err, "lock config")
	}
	defer func() { _ = s.lock.Unlock() }()

	return s.saveUnlocked(cfg)
}

// Update loads the config, applies fn and saves the result under a
// single lock. Nothing is written when fn fails.
func (s *Store) Update(fn func(*Config) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return errors.Wrap(err, "lock config")
	}
	defer func() { _ = s.lock.Unlock() }()

	cfg, err := s.loadUnlocked()
	if err != nil {
		return err
	}

	if err := fn(&cfg); err != nil {
		return err
	}

	return s.saveUnlocked(cfg)
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	return nil
}

func (s *Store) loadUnlocked() (Config, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{Version: CurrentVersion}, nil
		}
		return Config{}, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.WithHintf(errors.Wrap(err, "parse config"), "fix or remove %s", s.path)
	}

	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return Config{}, errors.Newf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
	}

	return cfg, nil
}

func (s *Store) saveUnlocked(cfg Config) error {
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return errors.Newf("refuse to write config version %d (expected %d)", cfg.Version, CurrentVersion)
	}

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	b = append(b, '\n')

	if err := atomicWriteFile(s.path, b, 0o600); err != nil {
		return errors.Wrap(err, "atomic write config")
	}

	return nil
}
