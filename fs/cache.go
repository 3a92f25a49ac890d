package fs

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/openfiscal/munidocs"
)

// Ensure CacheStore implements munidocs.CacheStore at compile time.
var _ munidocs.CacheStore = (*CacheStore)(nil)

// CacheStore persists discovery results as a single JSON document mapping
// entity name to cache record. Writes re-read the file under a lock, merge,
// and replace it atomically.
type CacheStore struct {
	path string
	mu   sync.Mutex
}

// NewCacheStore creates a CacheStore backed by the JSON document at path.
func NewCacheStore(path string) *CacheStore {
	return &CacheStore{path: path}
}

func (s *CacheStore) load() (map[string]*munidocs.CacheRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]*munidocs.CacheRecord{}, nil
	} else if err != nil {
		return nil, err
	}

	records := map[string]*munidocs.CacheRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, munidocs.Errorf(munidocs.EINTERNAL, "corrupt cache document %s: %v", s.path, err)
	}
	return records, nil
}

func (s *CacheStore) save(records map[string]*munidocs.CacheRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}

func (s *CacheStore) Lookup(ctx context.Context, entity string) (*munidocs.CacheRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	rec, ok := records[entity]
	if !ok {
		return nil, munidocs.Errorf(munidocs.ENOTFOUND, "no cached documents for %q", entity)
	}
	return rec, nil
}

func (s *CacheStore) Merge(ctx context.Context, entity string, slots map[string]string, originLink, method string) (*munidocs.CacheRecord, error) {
	if entity == "" {
		return nil, munidocs.Errorf(munidocs.EINVALID, "entity name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	rec, ok := records[entity]
	if !ok {
		rec = &munidocs.CacheRecord{
			Entity:    entity,
			Documents: map[string]string{},
		}
		records[entity] = rec
	}
	if rec.Documents == nil {
		rec.Documents = map[string]string{}
	}

	// Existing slots win; a merge only ever adds.
	for key, url := range slots {
		if _, taken := rec.Documents[key]; !taken {
			rec.Documents[key] = url
		}
	}
	if originLink != "" {
		rec.OriginLink = originLink
	}
	if method != "" {
		rec.Method = method
	}
	rec.LastUpdated = time.Now().UTC()
	rec.FoundCount = len(rec.Documents)

	if err := s.save(records); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *CacheStore) EntityNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *CacheStore) Stats(ctx context.Context) (*munidocs.CacheStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	stats := &munidocs.CacheStats{Entities: len(records)}
	for _, rec := range records {
		stats.Documents += len(rec.Documents)
	}
	if stats.Entities > 0 {
		stats.AvgPerEnt = float64(stats.Documents) / float64(stats.Entities)
	}
	return stats, nil
}
