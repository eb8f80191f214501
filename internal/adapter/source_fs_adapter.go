// Package adapter contains the runtime and filesystem adapters used by the nodecov CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "github.com/mouse-blink/nodecov/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer relies
// on when reading back covered scripts and staging the loader module. It hides
// direct `os` access so reporting logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// CreateTempFile creates a new file in the system temp directory whose name
	// matches pattern, writes content to it and returns its resolved path.
	CreateTempFile(pattern string, content []byte) (m.Path, error)

	// RealPath resolves symlinks and returns an absolute path.
	RealPath(path m.Path) (m.Path, error)

	// Remove deletes a single file.
	Remove(path m.Path) error
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the runtime and reporter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// CreateTempFile writes content to a fresh temp file and returns its real path.
func (a *LocalSourceFSAdapter) CreateTempFile(pattern string, content []byte) (m.Path, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}

	name := f.Name()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(name)

		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}

	resolved, err := a.RealPath(m.Path(name))
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}

	return resolved, nil
}

// RealPath returns the absolute, symlink-free form of path. Node reports the
// resolved location of every module, so comparisons against its URLs need it.
func (a *LocalSourceFSAdapter) RealPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}

// Remove deletes the file at path.
func (a *LocalSourceFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}
