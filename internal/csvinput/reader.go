// Package csvinput loads the project CSV and validates its header.
package csvinput

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/jakoblorz/go-builderdata/internal/models"
)

var (
	ErrEmptyInput     = errors.New("CSV file has no data rows")
	ErrMissingColumns = errors.New("CSV header is missing required columns")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed CSV file.
type Table struct {
	Header []string
	Rows   []models.Row
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// ReadFile reads and parses the CSV at path.
func ReadFile(fs filesystem.FileSystem, path string) (*Table, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", path, err)
	}

	table, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}

// Parse reads a header row followed by data rows. Header names are matched
// case-sensitively after trimming; a leading UTF-8 byte order mark is ignored.
// Rows may have fewer or more fields than the header.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Header: header}
	if missing := table.missingColumns(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) && name != "" {
				fields[name] = record[i]
			}
		}
		table.Rows = append(table.Rows, models.Row{Line: line, Fields: fields})
	}

	if len(table.Rows) == 0 {
		return nil, ErrEmptyInput
	}

	return table, nil
}

func (t *Table) missingColumns() []string {
	var missing []string
	for _, c := range models.RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
