// Package checkpoint persists the row index at which an interrupted audit
// should resume. One plain-text file per input workbook, named after the
// workbook's base name, holds a single decimal integer.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrCorrupt is returned when a checkpoint file does not hold an integer.
var ErrCorrupt = errors.New("checkpoint is not a row index")

// Store reads and writes checkpoints under a directory.
type Store struct {
	Dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Path is the checkpoint file for the named workbook:
// <dir>/audit-checkpoint-<stem>.txt.
func (s *Store) Path(workbook string) string {
	base := filepath.Base(workbook)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.Dir, "audit-checkpoint-"+stem+".txt")
}

// Load returns the saved row index, or 0 when there is no checkpoint or it
// is blank.
func (s *Store) Load(workbook string) (int, error) {
	data, err := os.ReadFile(s.Path(workbook))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, nil
	}

	idx, err := strconv.Atoi(content)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: %s: %q", ErrCorrupt, s.Path(workbook), content)
	}

	return idx, nil
}

// Exists reports whether a checkpoint file is present for the workbook.
func (s *Store) Exists(workbook string) bool {
	_, err := os.Stat(s.Path(workbook))
	return err == nil
}

// Save overwrites the checkpoint with idx, creating the directory if needed.
func (s *Store) Save(workbook string, idx int) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}
	if err := os.WriteFile(s.Path(workbook), []byte(strconv.Itoa(idx)), 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// Clear removes the checkpoint. A missing checkpoint is not an error.
func (s *Store) Clear(workbook string) error {
	err := os.Remove(s.Path(workbook))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}
