package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of munidocs.DocumentStore.
type DocumentStore struct {
	ExistingFilesFn func(ctx context.Context, entity string) ([]string, error)
	SaveDocumentFn  func(ctx context.Context, entity, filename string, data []byte) (string, error)
	RenameFn        func(ctx context.Context, entity, oldName, newName string) error
	FileExistsFn    func(entity, filename string) bool
	PathFn          func(entity, filename string) string
}

func (s *DocumentStore) ExistingFiles(ctx context.Context, entity string) ([]string, error) {
	return s.ExistingFilesFn(ctx, entity)
}

func (s *DocumentStore) SaveDocument(ctx context.Context, entity, filename string, data []byte) (string, error) {
	return s.SaveDocumentFn(ctx, entity, filename, data)
}

func (s *DocumentStore) Rename(ctx context.Context, entity, oldName, newName string) error {
	return s.RenameFn(ctx, entity, oldName, newName)
}

func (s *DocumentStore) FileExists(entity, filename string) bool {
	return s.FileExistsFn(entity, filename)
}

func (s *DocumentStore) Path(entity, filename string) string {
	return s.PathFn(entity, filename)
}

var _ munidocs.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of munidocs.Ledger.
type Ledger struct {
	RecordsFn     func(ctx context.Context, entity string) (map[string]*munidocs.RenameRecord, error)
	MergeRecordFn func(ctx context.Context, entity, filename string, rec *munidocs.RenameRecord) error
	MoveRecordFn  func(ctx context.Context, entity, oldName, newName string, rec *munidocs.RenameRecord) error
}

func (l *Ledger) Records(ctx context.Context, entity string) (map[string]*munidocs.RenameRecord, error) {
	return l.RecordsFn(ctx, entity)
}

func (l *Ledger) MergeRecord(ctx context.Context, entity, filename string, rec *munidocs.RenameRecord) error {
	return l.MergeRecordFn(ctx, entity, filename, rec)
}

func (l *Ledger) MoveRecord(ctx context.Context, entity, oldName, newName string, rec *munidocs.RenameRecord) error {
	return l.MoveRecordFn(ctx, entity, oldName, newName, rec)
}
