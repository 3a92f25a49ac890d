package munidocs

import (
	"context"
	"time"
)

// DiscoveryMeta is the discovery-time provenance of an acquired file,
// recorded by the reconciler at download time and copied into the rename
// record when the naming pipeline completes.
type DiscoveryMeta struct {
	SourceURL    string     `json:"sourceUrl"`
	SourcePage   string     `json:"sourcePage,omitempty"`
	Strategy     string     `json:"strategy,omitempty"`
	Confidence   Confidence `json:"confidence,omitempty"`
	ContentHash  string     `json:"contentHash,omitempty"`
	Size         int64      `json:"size,omitempty"`
	DownloadedAt time.Time  `json:"downloadedAt"`
}

// RenameRecord is one provenance ledger entry, keyed by the file's current
// canonical filename. The rename fields are set exactly once, when the
// naming pipeline completes for the file; files that never complete naming
// (no extractable text) keep a discovery-only record.
type RenameRecord struct {
	Discovery DiscoveryMeta `json:"discovery"`

	OriginalFilename     string     `json:"originalFilename,omitempty"`
	StandardizedFilename string     `json:"standardizedFilename,omitempty"`
	DocumentType         string     `json:"documentType,omitempty"`
	DocumentYear         string     `json:"documentYear,omitempty"`
	Confidence           Confidence `json:"renameConfidence,omitempty"`
	Rationale            string     `json:"renameRationale,omitempty"`
	RenamedAt            time.Time  `json:"renamedAt,omitzero"`
}

// Renamed reports whether the file has completed the naming pipeline.
func (r *RenameRecord) Renamed() bool {
	return r.StandardizedFilename != ""
}

// Ledger is the per-entity provenance ledger: current filename to record.
// Writes must be atomic (write-new-then-replace) and must only touch the
// named entity's document.
type Ledger interface {
	// Records returns all ledger entries for an entity, keyed by current
	// filename. A missing ledger yields an empty map, not an error.
	Records(ctx context.Context, entity string) (map[string]*RenameRecord, error)

	// MergeRecord sets the entry for filename, replacing any prior entry
	// under the same key.
	MergeRecord(ctx context.Context, entity, filename string, rec *RenameRecord) error

	// MoveRecord removes the entry under oldName (if any) and sets rec
	// under newName in a single atomic write.
	MoveRecord(ctx context.Context, entity, oldName, newName string, rec *RenameRecord) error
}
