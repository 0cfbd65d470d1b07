// Package adapter contains filesystem, process and viewer adapters for the
// unic CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "unic.dev/pkg/unic/internal/model"
)

// CaseFSAdapter abstracts the filesystem operations the domain layer relies
// on for input discovery and evidence persistence. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type CaseFSAdapter interface {
	// FileInfo returns metadata for a path so the domain can check
	// existence or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// ReadDir lists a directory in the order the underlying listing
	// yields.
	ReadDir(path m.Path) ([]os.DirEntry, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// Abs resolves a path to an absolute path.
	Abs(path m.Path) (m.Path, error)
}

// LocalCaseFSAdapter is the concrete CaseFSAdapter backed by the os package.
type LocalCaseFSAdapter struct{}

// NewLocalCaseFSAdapter constructs a LocalCaseFSAdapter ready to be wired
// into the workflow.
func NewLocalCaseFSAdapter() *LocalCaseFSAdapter {
	return &LocalCaseFSAdapter{}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalCaseFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadDir lists the entries of a directory.
func (a *LocalCaseFSAdapter) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalCaseFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalCaseFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// MkdirAll creates a directory and all missing parents.
func (a *LocalCaseFSAdapter) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// Abs resolves path to an absolute path.
func (a *LocalCaseFSAdapter) Abs(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}
