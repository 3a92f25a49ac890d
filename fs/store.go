package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openfiscal/munidocs"
)

// Ensure DocumentStore implements munidocs.DocumentStore at compile time.
var _ munidocs.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps acquired files in one folder per entity under baseDir.
// The folder name is the sanitized entity name.
type DocumentStore struct {
	baseDir string
}

// NewDocumentStore creates a DocumentStore rooted at baseDir.
func NewDocumentStore(baseDir string) *DocumentStore {
	return &DocumentStore{baseDir: baseDir}
}

// EntityDir returns the storage folder for an entity.
func (s *DocumentStore) EntityDir(entity string) string {
	return filepath.Join(s.baseDir, munidocs.SanitizeToken(entity))
}

func (s *DocumentStore) ExistingFiles(ctx context.Context, entity string) ([]string, error) {
	entries, err := os.ReadDir(s.EntityDir(entity))
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), munidocs.DocumentExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *DocumentStore) SaveDocument(ctx context.Context, entity, filename string, data []byte) (string, error) {
	if filename == "" {
		return "", munidocs.Errorf(munidocs.EINVALID, "filename is required")
	}
	path := s.Path(entity, filename)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *DocumentStore) Rename(ctx context.Context, entity, oldName, newName string) error {
	oldPath := s.Path(entity, oldName)
	newPath := s.Path(entity, newName)
	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return munidocs.Errorf(munidocs.ENOTFOUND, "file %q not found for %q", oldName, entity)
	} else if err != nil {
		return err
	}
	if oldPath == newPath {
		return nil
	}
	if _, err := os.Stat(newPath); err == nil {
		return munidocs.Errorf(munidocs.ECONFLICT, "file %q already exists for %q", newName, entity)
	}
	return os.Rename(oldPath, newPath)
}

func (s *DocumentStore) FileExists(entity, filename string) bool {
	info, err := os.Stat(s.Path(entity, filename))
	return err == nil && !info.IsDir()
}

func (s *DocumentStore) Path(entity, filename string) string {
	return filepath.Join(s.EntityDir(entity), filename)
}
