package dao

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestBoltDAO(t *testing.T) {
	runDocumentStoreSuite(t, func(t *testing.T) documentStore {
		db, err := bbolt.Open(filepath.Join(t.TempDir(), "picks.db"), 0o600, &bbolt.Options{Timeout: time.Second})
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		d, err := NewBoltDAO(db)
		require.NoError(t, err)
		return d
	})
}
