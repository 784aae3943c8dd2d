package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, []string{"*"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, BackendFile, conf.Store.Backend)
	assert.Equal(t, "entries/entries.json", conf.Store.DocumentKey())
	assert.Equal(t, DefaultMaxEntries, conf.Store.Capacity())
	assert.False(t, conf.Store.ConditionalWrites)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  port: "9090"
  log_level: debug
store:
  backend: bolt
  bucket: /var/lib/picks/picks.db
  max_entries: 300
`), 0o600))

	t.Setenv("API_PORT", "7070")
	t.Setenv("PREFIX", "picks/")
	t.Setenv("MAX_ENTRIES", "50")
	t.Setenv("CORS_ALLOW_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("STORE_CONDITIONAL_WRITES", "true")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
	assert.Equal(t, "debug", conf.API.LogLevel)
	assert.Equal(t, BackendBolt, conf.Store.Backend)
	assert.Equal(t, "/var/lib/picks/picks.db", conf.Store.Bucket)
	assert.Equal(t, "picks/entries.json", conf.Store.DocumentKey())
	assert.Equal(t, 50, conf.Store.Capacity())
	assert.True(t, conf.Store.ConditionalWrites)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, conf.API.AllowedCORSDomains)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestStoreConfig_Capacity(t *testing.T) {
	assert.Equal(t, DefaultMaxEntries, StoreConfig{}.Capacity())
	assert.Equal(t, DefaultMaxEntries, StoreConfig{MaxEntries: -1}.Capacity())
	assert.Equal(t, 7, StoreConfig{MaxEntries: 7}.Capacity())
}

func TestPostgresConfig_DSN(t *testing.T) {
	conf := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "picks", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=picks sslmode=disable", conf.DSN())

	conf.URL = "postgres://u:p@db/picks"
	assert.Equal(t, "postgres://u:p@db/picks", conf.DSN())
}
