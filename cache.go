package munidocs

import (
	"context"
	"strconv"
	"time"
)

// Discovery-method tags recorded on cache records.
const (
	MethodCache    = "cache"
	MethodBrowser  = "browser"
	MethodCrawl    = "crawl"
	MethodAnalysis = "page_analysis"
)

// CacheRecord is the durable discovery state for one entity. Documents maps
// a slot key (a year like "2024", a fiscal range like "2023-2024", or a
// disambiguated variant like "2024_1") to the source URL the document was
// discovered at.
type CacheRecord struct {
	Entity      string            `json:"entity"`
	OriginLink  string            `json:"originLink"`
	Documents   map[string]string `json:"documents"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Method      string            `json:"discoveryMethod"`
	FoundCount  int               `json:"foundCount"`
}

// CacheStats summarizes the cache contents.
type CacheStats struct {
	Entities  int     `json:"entities"`
	Documents int     `json:"documents"`
	AvgPerEnt float64 `json:"averagePerEntity"`
}

// CacheStore is the durable mapping from entity to its known documents.
//
// Merge unions slots into the entity's record: new slot keys are added,
// existing slot keys are never overwritten, and no other entity's record is
// touched. Persistence must be atomic (write-new-then-replace); a crash
// mid-write must not corrupt previously committed state.
type CacheStore interface {
	// Lookup retrieves the cache record for an entity.
	// Returns ENOTFOUND if the entity has never been cached; callers treat
	// that as "discover from scratch", not as a failure.
	Lookup(ctx context.Context, entity string) (*CacheRecord, error)

	// Merge unions slots into the entity's record, creating it if needed,
	// and returns the record as persisted.
	Merge(ctx context.Context, entity string, slots map[string]string, originLink, method string) (*CacheRecord, error)

	// EntityNames returns the names of all cached entities.
	EntityNames(ctx context.Context) ([]string, error)

	// Stats returns summary statistics over the whole cache.
	Stats(ctx context.Context) (*CacheStats, error)
}

// AssignSlotKeys derives the slot key for each document link, in order.
// The key is the link's year when known (year extraction over the URL as a
// fallback), otherwise "doc_N" by position. Duplicate keys within the batch
// get a numeric suffix in first-seen order: "2024", "2024_1", "2024_2".
func AssignSlotKeys(links []DiscoveredLink) map[string]string {
	slots := make(map[string]string, len(links))
	for i, link := range links {
		key := link.Year
		if key == "" {
			key = YearFromURL(link.URL)
		}
		if key == "" {
			key = "doc_" + strconv.Itoa(i+1)
		}
		base := key
		for n := 1; ; n++ {
			if _, ok := slots[key]; !ok {
				break
			}
			key = base + "_" + strconv.Itoa(n)
		}
		slots[key] = link.URL
	}
	return slots
}
