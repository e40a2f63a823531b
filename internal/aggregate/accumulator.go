// Package aggregate groups projects into per-sector maps and writes the
// JSON output tree.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/jakoblorz/go-builderdata/internal/models"
	"github.com/jakoblorz/go-builderdata/internal/slug"
)

var (
	ErrDuplicateID   = errors.New("duplicate project id")
	ErrEmptyGrouping = errors.New("sector and type must not be empty")
)

type sectorGroup struct {
	key   string
	name  string
	types []*typeGroup
	index map[string]*typeGroup
}

type typeGroup struct {
	key      string
	name     string
	projects []string
}

// Accumulator collects projects across a run. Sectors and types are keyed by
// their slug, so "DeFi" and "defi" share a group that keeps the first casing.
// Insertion order is preserved at every level.
type Accumulator struct {
	projects []*models.Project
	ids      map[string]int
	sectors  []*sectorGroup
	index    map[string]*sectorGroup
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		ids:   make(map[string]int),
		index: make(map[string]*sectorGroup),
	}
}

// Add records project under sector and projectType. A project whose id was
// already added is rejected with ErrDuplicateID and leaves the groups unchanged.
func (a *Accumulator) Add(project *models.Project, sector, projectType string) error {
	sectorKey := slug.Slugify(sector)
	typeKey := slug.Slugify(projectType)
	if sectorKey == "" || typeKey == "" {
		return ErrEmptyGrouping
	}

	if first, exists := a.ids[project.ID]; exists {
		return fmt.Errorf("%w %q (already used by %q)", ErrDuplicateID, project.ID, a.projects[first].Name)
	}

	sg, ok := a.index[sectorKey]
	if !ok {
		sg = &sectorGroup{key: sectorKey, name: sector, index: make(map[string]*typeGroup)}
		a.index[sectorKey] = sg
		a.sectors = append(a.sectors, sg)
	}

	tg, ok := sg.index[typeKey]
	if !ok {
		tg = &typeGroup{key: typeKey, name: projectType}
		sg.index[typeKey] = tg
		sg.types = append(sg.types, tg)
	}

	tg.projects = append(tg.projects, project.ID)
	a.ids[project.ID] = len(a.projects)
	a.projects = append(a.projects, project)
	return nil
}

// Has reports whether a project with id was added.
func (a *Accumulator) Has(id string) bool {
	_, ok := a.ids[id]
	return ok
}

// Len returns the number of accepted projects.
func (a *Accumulator) Len() int {
	return len(a.projects)
}

// Projects returns the accepted projects in insertion order.
func (a *Accumulator) Projects() []*models.Project {
	out := make([]*models.Project, len(a.projects))
	copy(out, a.projects)
	return out
}

// SectorMap pairs a map document with its file stem.
type SectorMap struct {
	Key   string
	Entry models.MapEntry
}

// Maps returns one map per sector in first-seen order.
func (a *Accumulator) Maps() []SectorMap {
	maps := make([]SectorMap, 0, len(a.sectors))
	for _, sg := range a.sectors {
		entry := models.MapEntry{
			Sector: sg.name,
			Types:  make([]models.TypeGroup, 0, len(sg.types)),
		}
		for _, tg := range sg.types {
			projects := make([]string, len(tg.projects))
			copy(projects, tg.projects)
			entry.Types = append(entry.Types, models.TypeGroup{
				ID:       tg.key,
				Name:     tg.name,
				Projects: projects,
			})
		}
		maps = append(maps, SectorMap{Key: sg.key, Entry: entry})
	}
	return maps
}
