package munidocs

import (
	"context"
	"time"
)

// DocumentExt is the file extension of documents this pipeline acquires.
const DocumentExt = ".pdf"

// AcquireStatus is the outcome of acquiring one document.
type AcquireStatus string

// Acquisition outcomes.
const (
	AcquireNew            AcquireStatus = "new"
	AcquireAlreadyPresent AcquireStatus = "already-present"
	AcquireFailed         AcquireStatus = "failed"
)

// AcquiredFile is a downloaded artifact owned by the entity's storage
// folder. Created on download; mutated only by rename.
type AcquiredFile struct {
	Entity       string
	Name         string
	Size         int64
	SourceURL    string
	SourcePage   string
	Strategy     string
	ContentHash  string
	DownloadedAt time.Time
	Status       AcquireStatus
}

// DocumentStore manages the per-entity storage folder: a flat collection of
// acquired files plus the co-located provenance ledger document.
type DocumentStore interface {
	// ExistingFiles lists the document filenames already present for an
	// entity. A missing folder yields an empty list, not an error.
	ExistingFiles(ctx context.Context, entity string) ([]string, error)

	// SaveDocument writes data under filename in the entity's folder and
	// returns the full path. The folder is created on first use.
	SaveDocument(ctx context.Context, entity, filename string, data []byte) (string, error)

	// Rename atomically moves a file within the entity's folder.
	Rename(ctx context.Context, entity, oldName, newName string) error

	// FileExists reports whether filename is present in the entity's folder.
	FileExists(entity, filename string) bool

	// Path returns the full path a file has (or would have) in the entity's
	// folder.
	Path(entity, filename string) string
}
