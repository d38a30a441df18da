// Package profile persists the user's profile as a JSON file under the
// platform config directory.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// Store reads and writes the profile file. A missing or unreadable file
// loads as a zero profile; the app works fine without one.
type Store struct {
	path   string
	logger *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the stored profile, or a zero profile when the file is
// absent or corrupt.
func (s *Store) Load() domain.Profile {
	if s.path == "" {
		return domain.Profile{}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read profile file", zap.String("path", s.path), zap.Error(err))
		}
		return domain.Profile{}
	}
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("profile file is corrupt, starting fresh", zap.String("path", s.path), zap.Error(err))
		return domain.Profile{}
	}
	return p
}

// Save writes the profile atomically: to a temp file in the same
// directory, then renamed into place.
func (s *Store) Save(p domain.Profile) error {
	if s.path == "" {
		return fmt.Errorf("no profile path configured")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "profile-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp profile file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close profile file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace profile file: %w", err)
	}
	return nil
}
