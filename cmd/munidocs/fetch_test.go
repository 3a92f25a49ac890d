package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/mock"
	"github.com/openfiscal/munidocs/pipeline"
	"github.com/openfiscal/munidocs/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoster = yaml.NewRoster([]munidocs.Entity{
	{Name: "Calgary", Website: "https://calgary.ca", Population: 1306784},
	{Name: "Edmonton", Website: "https://edmonton.ca", Population: 1010899},
	{Name: "Red Deer", Website: "https://reddeer.ca", Population: 100844},
})

func TestSelectEntities(t *testing.T) {
	t.Parallel()

	t.Run("by name", func(t *testing.T) {
		t.Parallel()

		entities, err := selectEntities(testRoster, []string{"red deer", "Calgary"}, 0)
		require.NoError(t, err)
		require.Len(t, entities, 2)
		assert.Equal(t, "Red Deer", entities[0].Name)
		assert.Equal(t, "Calgary", entities[1].Name)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := selectEntities(testRoster, []string{"Nowhere"}, 0)
		require.Error(t, err)
		assert.Equal(t, munidocs.ENOTFOUND, munidocs.ErrorCode(err))
	})

	t.Run("top by population", func(t *testing.T) {
		t.Parallel()

		entities, err := selectEntities(testRoster, nil, 2)
		require.NoError(t, err)
		require.Len(t, entities, 2)
		assert.Equal(t, "Calgary", entities[0].Name)
		assert.Equal(t, "Edmonton", entities[1].Name)
	})

	t.Run("all by default", func(t *testing.T) {
		t.Parallel()

		entities, err := selectEntities(testRoster, nil, 0)
		require.NoError(t, err)
		assert.Len(t, entities, 3)
	})
}

// cacheHitRunner builds a Runner whose collaborators serve one cached
// document per entity, so fetch exercises the acquisition and rename stages
// without a browser.
func cacheHitRunner() *pipeline.Runner {
	files := map[string][]byte{}
	records := map[string]*munidocs.RenameRecord{}

	return &pipeline.Runner{
		Cache: &mock.CacheStore{
			LookupFn: func(ctx context.Context, entity string) (*munidocs.CacheRecord, error) {
				return &munidocs.CacheRecord{
					Entity:    entity,
					Documents: map[string]string{"2024": "https://example.ca/budget-2024.pdf"},
				}, nil
			},
		},
		Downloader: &mock.Downloader{
			DownloadFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte("%PDF-1.4"), nil
			},
		},
		Store: &mock.DocumentStore{
			SaveDocumentFn: func(ctx context.Context, entity, filename string, data []byte) (string, error) {
				files[filename] = data
				return filename, nil
			},
			RenameFn: func(ctx context.Context, entity, oldName, newName string) error {
				files[newName] = files[oldName]
				delete(files, oldName)
				return nil
			},
			FileExistsFn: func(entity, filename string) bool {
				_, ok := files[filename]
				return ok
			},
			PathFn: func(entity, filename string) string { return filename },
		},
		Ledger: &mock.Ledger{
			RecordsFn: func(ctx context.Context, entity string) (map[string]*munidocs.RenameRecord, error) {
				return records, nil
			},
			MergeRecordFn: func(ctx context.Context, entity, filename string, rec *munidocs.RenameRecord) error {
				records[filename] = rec
				return nil
			},
			MoveRecordFn: func(ctx context.Context, entity, oldName, newName string, rec *munidocs.RenameRecord) error {
				delete(records, oldName)
				records[newName] = rec
				return nil
			},
		},
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(ctx context.Context, path string, maxChars int) (string, error) {
				return "ANNUAL BUDGET 2024", nil
			},
		},
		Classifier: &mock.Classifier{
			ClassifyDocumentFn: func(ctx context.Context, text, entityName, filename string) (*munidocs.Classification, error) {
				return &munidocs.Classification{
					DocumentType: "Annual Budget",
					Year:         "2024",
					Confidence:   munidocs.ConfidenceHigh,
				}, nil
			},
		},
		Concurrency: 1,
	}
}

func TestFetchCmd(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := &Dependencies{
		Ctx:      context.Background(),
		Stdout:   &stdout,
		Stderr:   &stderr,
		Entities: testRoster,
		Runner:   cacheHitRunner(),
	}

	cmd := &FetchCmd{Entity: []string{"Calgary"}}
	require.NoError(t, cmd.Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "Calgary: 1 documents (cache), 1 new, 0 already present")
	assert.Contains(t, output, "1 downloaded")
	assert.Contains(t, output, "1 renamed")
}

func TestFetchCmd_EmptyRoster(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := &Dependencies{
		Ctx:      context.Background(),
		Stdout:   &stdout,
		Stderr:   &stderr,
		Entities: yaml.NewRoster(nil),
	}

	cmd := &FetchCmd{}
	require.NoError(t, cmd.Run(deps))
	assert.Contains(t, stdout.String(), "No municipalities configured")
}
