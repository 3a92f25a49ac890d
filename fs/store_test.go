package fs_test

import (
	"context"
	"os"
	"testing"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_SaveAndList(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())
	ctx := context.Background()

	path, err := store.SaveDocument(ctx, "City of Calgary", "budget-2024.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.True(t, store.FileExists("City of Calgary", "budget-2024.pdf"))

	_, err = store.SaveDocument(ctx, "City of Calgary", "budget-2023.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	names, err := store.ExistingFiles(ctx, "City of Calgary")
	require.NoError(t, err)
	assert.Equal(t, []string{"budget-2023.pdf", "budget-2024.pdf"}, names)
}

func TestDocumentStore_ExistingFilesMissingFolder(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())

	names, err := store.ExistingFiles(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDocumentStore_ListSkipsLedger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewDocumentStore(dir)
	ctx := context.Background()

	_, err := store.SaveDocument(ctx, "Airdrie", "report.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path("Airdrie", fs.LedgerFilename), []byte("{}"), 0644))

	names, err := store.ExistingFiles(ctx, "Airdrie")
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf"}, names)
}

func TestDocumentStore_Rename(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())
	ctx := context.Background()

	_, err := store.SaveDocument(ctx, "Airdrie", "download.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	require.NoError(t, store.Rename(ctx, "Airdrie", "download.pdf", "Airdrie_Annual_Budget_2024.pdf"))
	assert.False(t, store.FileExists("Airdrie", "download.pdf"))
	assert.True(t, store.FileExists("Airdrie", "Airdrie_Annual_Budget_2024.pdf"))
}

func TestDocumentStore_RenameMissingSource(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())

	err := store.Rename(context.Background(), "Airdrie", "missing.pdf", "anything.pdf")
	assert.Equal(t, munidocs.ENOTFOUND, munidocs.ErrorCode(err))
}

func TestDocumentStore_RenameRefusesOverwrite(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())
	ctx := context.Background()

	_, err := store.SaveDocument(ctx, "Airdrie", "a.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	_, err = store.SaveDocument(ctx, "Airdrie", "b.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	err = store.Rename(ctx, "Airdrie", "a.pdf", "b.pdf")
	assert.Equal(t, munidocs.ECONFLICT, munidocs.ErrorCode(err))
}

func TestDocumentStore_RenameSameNameIsNoop(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())
	ctx := context.Background()

	_, err := store.SaveDocument(ctx, "Airdrie", "a.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	require.NoError(t, store.Rename(ctx, "Airdrie", "a.pdf", "a.pdf"))
	assert.True(t, store.FileExists("Airdrie", "a.pdf"))
}
