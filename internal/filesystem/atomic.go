package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tempAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// WriteFileAtomic creates the parent directory of path, writes data to a
// sibling temp file and renames it over path. Readers never observe a
// partially written file.
func WriteFileAtomic(fsys FileSystem, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	suffix, err := gonanoid.Generate(tempAlphabet, 8)
	if err != nil {
		return fmt.Errorf("failed to generate temp name: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, suffix)
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}
