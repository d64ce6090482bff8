// =============================================================================
// Relatório de Visitas - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the report pipeline:
//   - Draft discovery in the drafts directory
//   - Archival of processed drafts and their photo directories
//   - Directory management
//   - Archive retention
//
// ARCHIVAL STRATEGY:
//   - Drafts are moved to the archive directory after a report is written
//   - Generated reports stay in the output directory
//   - Drafts that fail processing remain in place for the next run
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the report pipeline.
type FileManager struct {
	// DraftsDir is the directory where draft files are placed.
	DraftsDir string

	// OutputDir is the directory where generated reports are placed.
	OutputDir string

	// ArchiveDir is the directory for archived drafts.
	ArchiveDir string
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(draftsDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		DraftsDir:  draftsDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.DraftsDir, fm.OutputDir, fm.ArchiveDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// DRAFT DISCOVERY
// =============================================================================

// DiscoverDrafts scans the drafts directory for files matching the pattern.
// An empty pattern defaults to "*.json".
func (fm *FileManager) DiscoverDrafts(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.json"
	}

	files, err := filepath.Glob(filepath.Join(fm.DraftsDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan drafts directory: %w", err)
	}

	var result []string
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			result = append(result, file)
		}
	}
	return result, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveFile moves a file into the archive directory and returns the archive
// path. Cross-device moves fall back to copy and delete.
func (fm *FileManager) ArchiveFile(path string) (string, error) {
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(path))
	if err := os.Rename(path, archivePath); err != nil {
		if err := copyFile(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}
	return archivePath, nil
}

// ArchiveDirectory moves a directory tree into the archive directory and
// returns the archive path. Cross-device moves fall back to a recursive copy
// and delete.
func (fm *FileManager) ArchiveDirectory(path string) (string, error) {
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(path))
	if err := os.Rename(path, archivePath); err != nil {
		if err := copyDir(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy directory to archive: %w", err)
		}
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("failed to remove original directory: %w", err)
		}
	}
	return archivePath, nil
}

// CleanOldArchives removes archive files older than maxAge and returns the
// number of files removed.
func (fm *FileManager) CleanOldArchives(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(fm.ArchiveDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to clean archives: %w", err)
	}
	return removed, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
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

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// copyDir recursively copies a directory tree from src to dst.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
