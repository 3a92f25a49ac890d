package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/openfiscal/munidocs"
)

// LedgerFilename is the provenance ledger document inside each entity
// folder.
const LedgerFilename = "metadata.json"

// Ensure Ledger implements munidocs.Ledger at compile time.
var _ munidocs.Ledger = (*Ledger)(nil)

// Ledger stores each entity's provenance records in a metadata.json document
// co-located with the entity's files.
type Ledger struct {
	baseDir string
	mu      sync.Mutex
}

// NewLedger creates a Ledger over the same folder layout as DocumentStore.
func NewLedger(baseDir string) *Ledger {
	return &Ledger{baseDir: baseDir}
}

func (l *Ledger) path(entity string) string {
	return filepath.Join(l.baseDir, munidocs.SanitizeToken(entity), LedgerFilename)
}

func (l *Ledger) load(entity string) (map[string]*munidocs.RenameRecord, error) {
	data, err := os.ReadFile(l.path(entity))
	if os.IsNotExist(err) {
		return map[string]*munidocs.RenameRecord{}, nil
	} else if err != nil {
		return nil, err
	}

	records := map[string]*munidocs.RenameRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, munidocs.Errorf(munidocs.EINTERNAL, "corrupt ledger for %q: %v", entity, err)
	}
	return records, nil
}

func (l *Ledger) save(entity string, records map[string]*munidocs.RenameRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(l.path(entity), data)
}

func (l *Ledger) Records(ctx context.Context, entity string) (map[string]*munidocs.RenameRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(entity)
}

func (l *Ledger) MergeRecord(ctx context.Context, entity, filename string, rec *munidocs.RenameRecord) error {
	if filename == "" {
		return munidocs.Errorf(munidocs.EINVALID, "filename is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(entity)
	if err != nil {
		return err
	}
	records[filename] = rec
	return l.save(entity, records)
}

func (l *Ledger) MoveRecord(ctx context.Context, entity, oldName, newName string, rec *munidocs.RenameRecord) error {
	if newName == "" {
		return munidocs.Errorf(munidocs.EINVALID, "new filename is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(entity)
	if err != nil {
		return err
	}
	delete(records, oldName)
	records[newName] = rec
	return l.save(entity, records)
}
