package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// MockFileSystem is an in-memory tree of files and directories keyed by
// cleaned absolute path.
type MockFileSystem struct {
	entries map[string]*mockEntry

	// Hooks for testing error scenarios, keyed by cleaned path
	MkdirAllErrors  map[string]error
	WriteFileErrors map[string]error
}

type mockEntry struct {
	content []byte
	dir     bool
}

// NewMockFileSystem creates an empty MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		entries:         make(map[string]*mockEntry),
		MkdirAllErrors:  make(map[string]error),
		WriteFileErrors: make(map[string]error),
	}
}

// AddFile stores content at path, creating parent directories
func (m *MockFileSystem) AddFile(path string, content []byte) {
	p := filepath.Clean(path)
	m.entries[p] = &mockEntry{content: content}
	m.addParents(p)
}

// AddDir creates path and its parents
func (m *MockFileSystem) AddDir(path string) {
	p := filepath.Clean(path)
	if _, ok := m.entries[p]; !ok {
		m.entries[p] = &mockEntry{dir: true}
	}
	m.addParents(p)
}

func (m *MockFileSystem) addParents(p string) {
	for dir := filepath.Dir(p); dir != "." && dir != "/" && dir != p; dir = filepath.Dir(dir) {
		if _, ok := m.entries[dir]; !ok {
			m.entries[dir] = &mockEntry{dir: true}
		}
	}
}

func (m *MockFileSystem) isDir(p string) bool {
	if p == "/" || p == "." {
		return true
	}
	e, ok := m.entries[p]
	return ok && e.dir
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	e, ok := m.entries[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if e.dir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return e.content, nil
}

func (m *MockFileSystem) WriteFile(path string, data []byte, _ fs.FileMode) error {
	p := filepath.Clean(path)
	if err, ok := m.WriteFileErrors[p]; ok {
		return err
	}
	if !m.isDir(filepath.Dir(p)) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	m.entries[p] = &mockEntry{content: append([]byte(nil), data...)}
	return nil
}

func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	from, to := filepath.Clean(oldPath), filepath.Clean(newPath)

	e, ok := m.entries[from]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if e.dir {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: errors.New("directories cannot be renamed")}
	}
	if !m.isDir(filepath.Dir(to)) {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}

	m.entries[to] = e
	delete(m.entries, from)
	return nil
}

func (m *MockFileSystem) Remove(path string) error {
	p := filepath.Clean(path)
	if _, ok := m.entries[p]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(m.entries, p)
	return nil
}

func (m *MockFileSystem) MkdirAll(path string, _ fs.FileMode) error {
	current := ""
	for _, part := range strings.Split(filepath.Clean(path), string(filepath.Separator)) {
		if part == "" {
			continue
		}
		if current == "" {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if err, ok := m.MkdirAllErrors[current]; ok {
			return &fs.PathError{Op: "mkdir", Path: current, Err: err}
		}
		if e, ok := m.entries[current]; ok {
			if !e.dir {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			continue
		}
		m.entries[current] = &mockEntry{dir: true}
	}
	return nil
}

func (m *MockFileSystem) Exists(path string) bool {
	_, ok := m.entries[filepath.Clean(path)]
	return ok
}

func (m *MockFileSystem) Glob(pattern string) ([]string, error) {
	var matches []string
	for p := range m.entries {
		ok, err := filepath.Match(pattern, p)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// FilesUnder returns the sorted paths of all regular files below root
func (m *MockFileSystem) FilesUnder(root string) []string {
	prefix := filepath.Clean(root)
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	var paths []string
	for p, e := range m.entries {
		if !e.dir && strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
