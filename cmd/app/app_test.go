package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysticpicks/picks-api/internal/config"
	"github.com/mysticpicks/picks-api/internal/repository"
	"github.com/mysticpicks/picks-api/internal/repository/dao"
)

func storeConfig(backend, bucket string) *config.AppConfig {
	return &config.AppConfig{
		Store: &config.StoreConfig{Backend: backend, Bucket: bucket, Prefix: "entries/"},
	}
}

func TestOpenDocuments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, tc := range []struct{ backend, bucket string }{
		{config.BackendFile, filepath.Join(dir, "files")},
		{config.BackendBolt, filepath.Join(dir, "bolt", "picks.db")},
		{config.BackendSQLite, filepath.Join(dir, "sqlite", "picks.sqlite")},
	} {
		t.Run(tc.backend, func(t *testing.T) {
			documents, closer, err := OpenDocuments(ctx, storeConfig(tc.backend, tc.bucket))
			require.NoError(t, err)
			t.Cleanup(func() { _ = closer.Close() })

			require.NoError(t, documents.Put(ctx, "entries/entries.json", []byte("[]\n"), dao.Condition{}))
			doc, err := documents.Get(ctx, "entries/entries.json")
			require.NoError(t, err)
			assert.Equal(t, "[]\n", string(doc.Body))
		})
	}

	_, _, err := OpenDocuments(ctx, storeConfig("s3", dir))
	assert.ErrorContains(t, err, `unknown store backend "s3"`)
}

func TestMigrateEntries(t *testing.T) {
	ctx := context.Background()
	conf := storeConfig(config.BackendFile, t.TempDir())

	documents, closer, err := OpenDocuments(ctx, conf)
	require.NoError(t, err)
	defer closer.Close()

	legacy := `[{"Key":"old-1","game":"fantasy5","picks":[{"Number":4}],"isPlayed":"yes","pickedAt":"2024-01-01T00:00:00Z"},` +
		`{"id":"old-2","game":"superlotto","picks":[],"played":false,"pickedAt":"2024-02-01T00:00:00Z"}]`
	require.NoError(t, documents.Put(ctx, conf.Store.DocumentKey(), []byte(legacy), dao.Condition{}))

	repo := repository.NewEntryRepository(documents, *conf.Store)
	n, err := MigrateEntries(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc, err := documents.Get(ctx, conf.Store.DocumentKey())
	require.NoError(t, err)
	assert.Equal(t,
		`[{"v":1,"id":"old-2","game":"superlotto","picks":[],"played":false,"pickedAt":"2024-02-01T00:00:00Z"},`+
			`{"v":1,"id":"old-1","game":"fantasy5","picks":[{"Number":4,"IsSpecial":false,"Name":null}],"played":true,"pickedAt":"2024-01-01T00:00:00Z"}]`+"\n",
		string(doc.Body))
}
