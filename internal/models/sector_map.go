package models

// MapEntry is the per-sector "map" document listing the sector's type groups.
type MapEntry struct {
	// Sector is the sector name with the casing of its first occurrence
	Sector string `json:"sector"`

	// Types are ordered by first occurrence within the sector
	Types []TypeGroup `json:"types"`
}

// TypeGroup lists the project ids of one type within a sector.
type TypeGroup struct {
	// ID is the slug of the type name
	ID string `json:"id"`

	// Name is the type name with the casing of its first occurrence
	Name string `json:"name"`

	// Projects are project ids in processing order
	Projects []string `json:"projects"`
}

// ProjectCount returns the number of project ids across all type groups.
func (m *MapEntry) ProjectCount() int {
	count := 0
	for _, t := range m.Types {
		count += len(t.Projects)
	}
	return count
}
