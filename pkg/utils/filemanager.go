// =============================================================================
// Statutes at Large Tools - File Manager Utility
// =============================================================================
//
// This module provides the file operations the pipeline needs:
//   - Directory management
//   - Existence checks
//   - Write-once output files (never overwrite a published fragment)
//   - Diagnostics log generation
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager owns the working directories of a run.
type FileManager struct {
	// ExcelDir holds source, audited and in-process workbooks.
	ExcelDir string

	// HTMLDir receives generated fragments.
	HTMLDir string

	// TmpDir holds checkpoints and diagnostics logs.
	TmpDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(excelDir, htmlDir, tmpDir string) *FileManager {
	return &FileManager{
		ExcelDir: excelDir,
		HTMLDir:  htmlDir,
		TmpDir:   tmpDir,
	}
}

// EnsureDirectories creates the output directories if they don't exist.
// ExcelDir is not created: it must already hold the source workbook.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.HTMLDir, fm.TmpDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE OPERATIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// WriteFileExclusive creates path and writes data to it. If the file
// already exists nothing is written and the returned error wraps
// os.ErrExist.
func WriteFileExclusive(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return file.Close()
}

// RemoveIfExists deletes path. A missing file is not an error.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// DIAGNOSTICS LOG GENERATION
// =============================================================================

// DiagnosticEntry represents a single row-level diagnostic.
type DiagnosticEntry struct {
	Timestamp time.Time
	FileName  string
	Kind      string
	Message   string
	Index     int
	RowNumber int
	Session   string
}

// WriteDiagnosticsLog writes diagnostic entries to a log file in dir.
//
// PARAMETERS:
//   - entries: The diagnostics to write.
//   - dir: The directory to write the log file.
//   - runID: Identifier of the run, included in the file name.
//
// RETURNS:
//   - The path to the log file, or "" when there was nothing to write.
//   - An error if writing fails.
func WriteDiagnosticsLog(entries []DiagnosticEntry, dir, runID string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	// Generate log file name.
	timestamp := time.Now().Format("20060102_150405")
	logFileName := fmt.Sprintf("diagnostics_%s_%s.txt", timestamp, runID)
	logPath := filepath.Join(dir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create diagnostics log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	// Write header.
	fmt.Fprintf(writer, "Statutes at Large Tools - Diagnostics Log\n"+
		"Run:       %s\n"+
		"Generated: %s\n"+
		"Total:     %d\n"+
		"================================================================================\n\n",
		runID,
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	// Write each entry.
	for i, entry := range entries {
		fmt.Fprintf(writer, "Diagnostic #%d\n"+
			"  Timestamp:  %s\n"+
			"  File:       %s\n"+
			"  Kind:       %s\n"+
			"  Message:    %s\n"+
			"  Row Index:  %d\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.Kind,
			entry.Message,
			entry.Index)

		if entry.RowNumber > 0 {
			fmt.Fprintf(writer, "  Row Number: %d\n", entry.RowNumber)
		}
		if entry.Session != "" {
			fmt.Fprintf(writer, "  Session:    %s\n", entry.Session)
		}
		writer.WriteString("\n")
	}

	// Write footer.
	writer.WriteString("================================================================================\n" +
		"End of Diagnostics Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush diagnostics log: %w", err)
	}

	return logPath, nil
}
