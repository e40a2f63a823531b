// Package testutil builds in-memory input fixtures for processor tests.
package testutil

import (
	"encoding/csv"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-builderdata/internal/filesystem"
)

// DefaultHeader is the column order of the reference input format.
var DefaultHeader = []string{"name", "sector", "type", "website", "x", "github", "location", "description"}

// FixtureBuilder helps create test inputs on a mock filesystem
type FixtureBuilder struct {
	fs     *filesystem.MockFileSystem
	root   string
	header []string
	rows   [][]string
}

// NewFixtureBuilder creates a new FixtureBuilder rooted at root
func NewFixtureBuilder(root string) *FixtureBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)

	return &FixtureBuilder{
		fs:     fs,
		root:   root,
		header: DefaultHeader,
	}
}

// WithHeader replaces the header row
func (fb *FixtureBuilder) WithHeader(columns ...string) *FixtureBuilder {
	fb.header = columns
	return fb
}

// AddRow adds a data row; values follow the header order
func (fb *FixtureBuilder) AddRow(values ...string) *FixtureBuilder {
	fb.rows = append(fb.rows, values)
	return fb
}

// AddProject adds a row with the required columns set and optional ones empty
func (fb *FixtureBuilder) AddProject(name, sector, projectType, website string) *FixtureBuilder {
	values := map[string]string{
		"name":    name,
		"sector":  sector,
		"type":    projectType,
		"website": website,
	}

	row := make([]string, len(fb.header))
	for i, col := range fb.header {
		row[i] = values[col]
	}
	return fb.AddRow(row...)
}

// CSVPath is where Build writes the input file
func (fb *FixtureBuilder) CSVPath() string {
	return filepath.Join(fb.root, "projects.csv")
}

// OutputDir is the conventional output directory of the fixture
func (fb *FixtureBuilder) OutputDir() string {
	return filepath.Join(fb.root, "output")
}

// Build writes the CSV and returns the filesystem
func (fb *FixtureBuilder) Build() *filesystem.MockFileSystem {
	fb.fs.AddFile(fb.CSVPath(), []byte(fb.CSV()))
	return fb.fs
}

// CSV renders the header and rows
func (fb *FixtureBuilder) CSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(fb.header)
	for _, row := range fb.rows {
		_ = w.Write(row)
	}
	w.Flush()
	return sb.String()
}
