package munidocs

import "strings"

// Entity represents a municipality tracked by the pipeline. Entities are
// supplied by configuration and are read-only to the core: the name is the
// stable identity key, the website is the canonical origin discovery starts
// from.
type Entity struct {
	Name        string   `yaml:"name" json:"name"`
	Website     string   `yaml:"website" json:"website"`
	SearchPaths []string `yaml:"search_paths" json:"searchPaths,omitempty"`
	Region      string   `yaml:"region" json:"region,omitempty"`
	Population  int      `yaml:"population" json:"population,omitempty"`

	// YearRange restricts discovery to documents whose year falls inside
	// "FROM-TO" (inclusive). Empty means no restriction; documents with no
	// identifiable year always pass.
	YearRange string `yaml:"year_range" json:"yearRange,omitempty"`
}

// Validate returns an error if the entity contains invalid fields.
func (e *Entity) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "entity name required")
	}
	if e.Website == "" {
		return Errorf(EINVALID, "entity website required")
	}
	return nil
}

// YearInRange reports whether a document year passes the entity's year
// restriction. An empty range, an empty year, or a malformed range admits
// everything.
func (e *Entity) YearInRange(year string) bool {
	if e.YearRange == "" || year == "" {
		return true
	}
	from, to, ok := strings.Cut(e.YearRange, "-")
	if !ok {
		return year == e.YearRange
	}
	if len(from) != 4 || len(to) != 4 {
		return true
	}
	return year >= from && year <= to
}

// EntityService provides read-only access to the configured entity roster.
type EntityService interface {
	// Entities returns all configured entities.
	Entities() []Entity

	// FindEntity retrieves an entity by name (case-insensitive).
	// Returns ENOTFOUND if the entity is not configured.
	FindEntity(name string) (*Entity, error)
}
