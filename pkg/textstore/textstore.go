package textstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	tempSuffix   = ".tmp"
	backupSuffix = ".bak"
)

// Store reads and writes line-based record files inside a single data
// directory. Every write replaces the whole file: the lines are written to a
// temp file, the current file is copied to a backup, and the temp file is
// renamed onto the target. A failed write never leaves the target half-written.
type Store struct {
	dir string
	log *zap.Logger
}

// New creates a Store rooted at dir. The directory is created on first write.
func New(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the data directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of a record file inside the data directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// ReadAllLines returns the trimmed, non-empty lines of the named file.
// A missing file is not an error: it reads as an empty record set.
func (s *Store) ReadAllLines(name string) ([]string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// WriteAllLines replaces the named file with the given lines. On success the
// file contains exactly the given lines, one per line with a trailing newline.
// On failure the previous content is restored from the backup copy and an
// error is returned.
func (s *Store) WriteAllLines(name string, lines []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.dir, err)
	}

	target := s.Path(name)
	temp := target + tempSuffix
	backup := target + backupSuffix

	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	if err := os.WriteFile(temp, []byte(content), 0o644); err != nil {
		// Target untouched, just clean up the temp file.
		_ = os.Remove(temp)
		return fmt.Errorf("write temp file for %s: %w", name, err)
	}

	// Keep a backup of the current file so a failed rename can be undone.
	hadBackup := false
	if _, err := os.Stat(target); err == nil {
		if err := copyFile(target, backup); err != nil {
			_ = os.Remove(temp)
			return fmt.Errorf("back up %s: %w", name, err)
		}
		hadBackup = true
	}

	if err := os.Rename(temp, target); err != nil {
		if hadBackup {
			if restoreErr := copyFile(backup, target); restoreErr != nil {
				s.log.Error("failed to restore record file from backup",
					zap.String("file", name),
					zap.Error(restoreErr))
			}
		}
		_ = os.Remove(temp)
		return fmt.Errorf("replace %s: %w", name, err)
	}

	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
