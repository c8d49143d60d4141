package ical

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Store manages the single published calendar file. It is read once per run
// for revision lookup and then wholly replaced.
type Store struct {
	dir      string
	filename string
	logger   *slog.Logger
}

// NewStore creates a Store for the given output directory and filename.
func NewStore(dir, filename string, logger *slog.Logger) *Store {
	return &Store{dir: dir, filename: filename, logger: logger}
}

// Path returns the full path of the published document.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.filename)
}

// Sequences reads the previously published document and returns its
// UID → SEQUENCE mapping. A missing, unreadable, or malformed file yields an
// empty map; revision lookup is never fatal.
func (s *Store) Sequences() map[string]int {
	doc, err := os.ReadFile(s.Path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("previous calendar unreadable, starting sequences at 0",
				"path", s.Path(), "error", err)
		}
		return map[string]int{}
	}
	return ScanSequences(doc)
}

// Replace atomically swaps the published document for doc: the new content
// is written to a temporary file in the same directory and renamed over the
// target, so a concurrent reader sees either the old or the new document,
// never a partial one.
func (s *Store) Replace(doc []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, s.filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path(), err)
	}

	s.logger.Info("calendar published", "path", s.Path(), "bytes", len(doc))
	return nil
}
