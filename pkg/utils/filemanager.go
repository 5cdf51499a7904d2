// =============================================================================
// Receipt Analyzer - File Manager Utility
// =============================================================================
//
// This module provides the filesystem side of a run:
//   - Input discovery
//   - Copying valid receipts to the output directory under their new name
//   - Writing the error log of receipts that failed extraction
//
// RUN ARTIFACTS:
//   Artifacts are tagged with the run's start time to the minute, so repeated
//   runs never overwrite each other's table or error log. Renamed receipt
//   copies do overwrite an existing file of the same name.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for a run.
type FileManager struct {
	// InputDir is the directory where receipt documents are placed.
	InputDir string

	// OutputDir receives renamed copies of valid receipts.
	OutputDir string

	// ReportDir receives the error log.
	ReportDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, reportDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
		ReportDir: reportDir,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the files of InputDir whose name matches pattern.
//
// PARAMETERS:
//   - pattern: A glob pattern matched against file names (e.g., "*.pdf").
//
// RETURNS:
//   - The matching file paths, sorted by name. Subdirectories are skipped.
//   - An error if the directory cannot be read or the pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			files = append(files, filepath.Join(fm.InputDir, entry.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

// =============================================================================
// RENAMED COPIES
// =============================================================================

// CopyToOutput copies a document into OutputDir under newName.
//
// RETURNS:
//   - The path of the copy.
//   - An error if the copy fails.
func (fm *FileManager) CopyToOutput(src, newName string) (string, error) {
	if newName == "" || filepath.Base(newName) != newName {
		return "", fmt.Errorf("invalid output file name %q", newName)
	}

	dst := filepath.Join(fm.OutputDir, newName)
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry is one receipt that failed extraction.
type ErrorLogEntry struct {
	FileName string
	Text     string
}

// ErrorLogFileName returns the error log file name for a run started at ts.
func ErrorLogFileName(ts time.Time) string {
	return fmt.Sprintf("error_%s.txt", ts.Format("20060102_1504"))
}

// WriteErrorLogTo writes entries as "<file name>\n<text>\n\n" blocks.
func WriteErrorLogTo(w io.Writer, entries []ErrorLogEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(e.FileName)
		bw.WriteString("\n")
		bw.WriteString(e.Text)
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

// WriteErrorLog writes the error log into ReportDir.
//
// PARAMETERS:
//   - entries: The receipts that failed extraction, in processing order.
//   - ts: The run's start time.
//
// RETURNS:
//   - The path to the error log, or "" when there are no entries (no file
//     is created).
//   - An error if writing fails.
func (fm *FileManager) WriteErrorLog(entries []ErrorLogEntry, ts time.Time) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	logPath := filepath.Join(fm.ReportDir, ErrorLogFileName(ts))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	if err := WriteErrorLogTo(file, entries); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}

	if err := file.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst, replacing dst if it exists.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}
