// Package yaml loads the municipality roster from YAML or CSV
// configuration files.
package yaml

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/openfiscal/munidocs"
	"gopkg.in/yaml.v3"
)

// Ensure type implements interface.
var _ munidocs.EntityService = (*Roster)(nil)

// Roster is an in-memory, read-only entity roster.
type Roster struct {
	entities []munidocs.Entity
}

// NewRoster returns a roster over the given entities.
func NewRoster(entities []munidocs.Entity) *Roster {
	return &Roster{entities: entities}
}

// LoadRoster reads a YAML roster file. The file carries a top-level
// "municipalities" key holding the entity list.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, munidocs.Errorf(munidocs.EINVALID, "read roster %s: %v", path, err)
	}

	var wrapper struct {
		Municipalities []munidocs.Entity `yaml:"municipalities"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, munidocs.Errorf(munidocs.EINVALID, "parse roster %s: %v", path, err)
	}

	for i := range wrapper.Municipalities {
		if err := wrapper.Municipalities[i].Validate(); err != nil {
			return nil, munidocs.Errorf(munidocs.EINVALID, "roster entry %d: %v", i, err)
		}
	}
	return NewRoster(wrapper.Municipalities), nil
}

// LoadRosterCSV reads a CSV roster. The header row names the columns; name
// and website are required, search_paths is semicolon-separated, region and
// population are optional.
func LoadRosterCSV(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, munidocs.Errorf(munidocs.EINVALID, "read roster %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, munidocs.Errorf(munidocs.EINVALID, "parse roster %s: %v", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "website"} {
		if _, ok := cols[required]; !ok {
			return nil, munidocs.Errorf(munidocs.EINVALID, "roster %s: missing column %q", path, required)
		}
	}

	var entities []munidocs.Entity
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, munidocs.Errorf(munidocs.EINVALID, "roster %s row %d: %v", path, row, err)
		}

		entity := munidocs.Entity{
			Name:      field(record, cols, "name"),
			Website:   field(record, cols, "website"),
			Region:    field(record, cols, "region"),
			YearRange: field(record, cols, "year_range"),
		}
		if paths := field(record, cols, "search_paths"); paths != "" {
			for _, p := range strings.Split(paths, ";") {
				if p = strings.TrimSpace(p); p != "" {
					entity.SearchPaths = append(entity.SearchPaths, p)
				}
			}
		}
		if pop := field(record, cols, "population"); pop != "" {
			n, err := strconv.Atoi(strings.ReplaceAll(pop, ",", ""))
			if err != nil {
				return nil, munidocs.Errorf(munidocs.EINVALID, "roster %s row %d: population %q", path, row, pop)
			}
			entity.Population = n
		}
		if err := entity.Validate(); err != nil {
			return nil, munidocs.Errorf(munidocs.EINVALID, "roster %s row %d: %v", path, row, err)
		}
		entities = append(entities, entity)
	}
	return NewRoster(entities), nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Entities returns all configured entities in roster order.
func (r *Roster) Entities() []munidocs.Entity {
	out := make([]munidocs.Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// FindEntity retrieves an entity by name, case-insensitively.
func (r *Roster) FindEntity(name string) (*munidocs.Entity, error) {
	for i := range r.entities {
		if strings.EqualFold(r.entities[i].Name, name) {
			entity := r.entities[i]
			return &entity, nil
		}
	}
	return nil, munidocs.Errorf(munidocs.ENOTFOUND, "entity %q not configured", name)
}

// Top returns the n most populous entities, largest first. Entities with no
// population sort last; ties keep roster order.
func (r *Roster) Top(n int) []munidocs.Entity {
	out := r.Entities()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Population > out[j].Population
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
