// Package storage is the media blob store. Entities only hold paths into
// it; replacing or removing a reference releases the old file, except for
// the shared default placeholders.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blogring/backend/internal/models"
)

// Store writes and deletes media files under a base directory.
type Store struct {
	BaseDir string
}

// New returns a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{BaseDir: dir}, nil
}

// AbsPath resolves a stored path to its on-disk location. Paths escaping the
// base directory are rejected.
func (s *Store) AbsPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	abs := filepath.Join(s.BaseDir, clean)
	if !strings.HasPrefix(abs, filepath.Clean(s.BaseDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes media dir", path)
	}
	return abs, nil
}

// Delete removes a stored file. Default placeholders and already-missing
// files are left alone.
func (s *Store) Delete(path string) error {
	if path == "" || IsPlaceholder(path) {
		return nil
	}
	abs, err := s.AbsPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteAll removes every given file, keeping the first error.
func (s *Store) DeleteAll(paths []string) error {
	var firstErr error
	for _, p := range paths {
		if err := s.Delete(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsPlaceholder reports whether path is one of the shared defaults.
func IsPlaceholder(path string) bool {
	return path == models.DefaultBlogPic || path == models.DefaultUserPic
}
