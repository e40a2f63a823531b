package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-builderdata/internal/filesystem"
)

// Writer emits the data/ tree below an output directory.
type Writer struct {
	fs        filesystem.FileSystem
	outputDir string
}

// WriteResult lists the files a Write produced.
type WriteResult struct {
	ProjectFiles []string
	MapFiles     []string
}

// NewWriter creates a Writer rooted at outputDir.
func NewWriter(fs filesystem.FileSystem, outputDir string) *Writer {
	return &Writer{fs: fs, outputDir: outputDir}
}

// ProjectsDir is where project documents are written.
func (w *Writer) ProjectsDir() string {
	return filepath.Join(w.outputDir, "data", "projects")
}

// MapsDir is where sector maps are written.
func (w *Writer) MapsDir() string {
	return filepath.Join(w.outputDir, "data", "maps")
}

// Prepare creates the output directories. Called before any row is processed
// so an unusable output directory fails the run early.
func (w *Writer) Prepare() error {
	for _, dir := range []string{w.ProjectsDir(), w.MapsDir()} {
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExistingProjects returns the project documents already present.
func (w *Writer) ExistingProjects() ([]string, error) {
	return w.fs.Glob(filepath.Join(w.ProjectsDir(), "*.json"))
}

// Write emits one document per project and one map per sector.
func (w *Writer) Write(acc *Accumulator) (*WriteResult, error) {
	if err := w.Prepare(); err != nil {
		return nil, err
	}

	result := &WriteResult{}

	for _, p := range acc.Projects() {
		path := filepath.Join(w.ProjectsDir(), p.ID+".json")
		if err := w.writeJSON(path, p); err != nil {
			return result, fmt.Errorf("failed to write project %s: %w", p.ID, err)
		}
		result.ProjectFiles = append(result.ProjectFiles, path)
	}

	for _, m := range acc.Maps() {
		path := filepath.Join(w.MapsDir(), m.Key+".json")
		if err := w.writeJSON(path, m.Entry); err != nil {
			return result, fmt.Errorf("failed to write map %s: %w", m.Key, err)
		}
		result.MapFiles = append(result.MapFiles, path)
	}

	return result, nil
}

func (w *Writer) writeJSON(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return filesystem.WriteFileAtomic(w.fs, path, data, 0644)
}

// Marshal encodes v as two-space indented JSON with a trailing newline.
// Non-ASCII text and characters like & and < are written verbatim.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
