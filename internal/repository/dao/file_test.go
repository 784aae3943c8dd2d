package dao

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDAO_MemMapFs(t *testing.T) {
	runDocumentStoreSuite(t, func(t *testing.T) documentStore {
		return NewFileDAO(afero.NewMemMapFs(), "/bucket")
	})
}

func TestFileDAO_OsFs(t *testing.T) {
	runDocumentStoreSuite(t, func(t *testing.T) documentStore {
		return NewFileDAO(afero.NewOsFs(), t.TempDir())
	})
}

func TestFileDAO_LeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	d := NewFileDAO(afero.NewOsFs(), root)

	require.NoError(t, d.Put(context.Background(), "entries/entries.json", []byte("[]\n"), Condition{}))
	require.NoError(t, d.Put(context.Background(), "entries/entries.json", []byte("[1]\n"), Condition{}))

	files, err := os.ReadDir(filepath.Join(root, "entries"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "entries.json", files[0].Name())
}
