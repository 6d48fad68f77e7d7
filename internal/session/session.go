// Package session persists the authenticated user across runs. A locally
// stored session is trusted until an API call fails; there is no network
// validation on restore.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Griffon01/borelli-advocacia/internal/model"
)

// FileName is the fixed name of the session file inside the config dir.
const FileName = "session.json"

// Store reads and writes the single persisted session.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the given file path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "borelli", FileName), nil
}

// Load returns the persisted user, or nil when no session exists. A
// malformed file is discarded and removed rather than surfaced as an error.
func (s *Store) Load() *model.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("session read failed", "path", s.path, "error", err)
		}
		return nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("discarding malformed session", "path", s.path, "error", err)
		if err := os.Remove(s.path); err != nil {
			s.logger.Warn("session remove failed", "path", s.path, "error", err)
		}
		return nil
	}
	return &user
}

// Save persists the user atomically: temp file in the same directory, then
// rename over the target.
func (s *Store) Save(user *model.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Clear removes the persisted session. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
