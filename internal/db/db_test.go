package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBolt(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "nested", "picks.db"))
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestOpenSQLite(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "picks.sqlite"))
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := OpenBolt("  ")
	assert.Error(t, err)

	_, err = OpenSQLite("")
	assert.Error(t, err)
}
