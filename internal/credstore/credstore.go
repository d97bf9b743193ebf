// Package credstore persists authentication credentials across runs.
// Credentials are stored in ~/.config/parasvg/credentials.toml.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultCredsPath = "~/.config/parasvg/credentials.toml"

// DefaultPath returns the default credentials file path.
func DefaultPath() string {
	return defaultCredsPath
}

// Store is a persistent key-value slot for credentials. The zero value is
// not usable; construct one with New.
type Store struct {
	path string
}

// New builds a Store backed by the file at path. An empty path uses the
// default location.
func New(path string) *Store {
	return &Store{path: path}
}

// Get reads the value stored under key. The second return is false when no
// value is stored. Errors indicate the store itself could not be read;
// callers are expected to treat them as non-fatal.
func (s *Store) Get(key string) (string, bool, error) {
	resolved, err := s.resolve()
	if err != nil {
		return "", false, err
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read credentials: %w", err)
	}

	values := map[string]string{}
	if err := toml.Unmarshal(bytes, &values); err != nil {
		return "", false, fmt.Errorf("parse credentials: %w", err)
	}

	value, ok := values[key]
	return value, ok, nil
}

// Set writes value under key, creating the file and its directory as
// needed. Values already stored under other keys are preserved.
func (s *Store) Set(key, value string) error {
	resolved, err := s.resolve()
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	values := map[string]string{}
	if bytes, err := os.ReadFile(resolved); err == nil {
		// Ignore parse failures; a corrupt file is rewritten from scratch.
		_ = toml.Unmarshal(bytes, &values)
	}
	values[key] = value

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	bytes, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *Store) resolve() (string, error) {
	if strings.TrimSpace(s.path) == "" {
		return expandPath(defaultCredsPath)
	}
	return expandPath(s.path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
