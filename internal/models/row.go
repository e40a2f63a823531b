package models

import "strings"

// Column names recognised in the input header.
const (
	ColumnName        = "name"
	ColumnSector      = "sector"
	ColumnType        = "type"
	ColumnWebsite     = "website"
	ColumnX           = "x"
	ColumnTwitter     = "twitter"
	ColumnGitHub      = "github"
	ColumnDescription = "description"
	ColumnLocation    = "location"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{ColumnName, ColumnSector, ColumnType, ColumnWebsite}

// Row is one CSV data record keyed by header name.
type Row struct {
	// Line is the 1-based line number in the input file (header is line 1)
	Line int

	Fields map[string]string
}

// Get returns the trimmed value of the first column that holds a non-empty
// value. Missing columns count as empty.
func (r Row) Get(columns ...string) string {
	for _, c := range columns {
		if v := strings.TrimSpace(r.Fields[c]); v != "" {
			return v
		}
	}
	return ""
}
