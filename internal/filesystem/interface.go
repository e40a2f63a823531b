package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over the file operations the processor
// needs, so runs can be exercised against an in-memory tree in tests.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Exists(path string) bool
	Glob(pattern string) ([]string, error)
}
