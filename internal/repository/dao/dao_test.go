package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentStore interface {
	Get(ctx context.Context, key string) (Document, error)
	Put(ctx context.Context, key string, body []byte, cond Condition) error
}

// runDocumentStoreSuite checks the behaviour every backend must share.
func runDocumentStoreSuite(t *testing.T, open func(t *testing.T) documentStore) {
	t.Helper()
	ctx := context.Background()
	const key = "entries/entries.json"

	t.Run("missing document", func(t *testing.T) {
		d := open(t)

		_, err := d.Get(ctx, key)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		d := open(t)
		body := []byte("[]\n")

		require.NoError(t, d.Put(ctx, key, body, Condition{}))

		doc, err := d.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, body, doc.Body)
		assert.Equal(t, Checksum(body), doc.Version)
	})

	t.Run("blind overwrite", func(t *testing.T) {
		d := open(t)

		require.NoError(t, d.Put(ctx, key, []byte(`[{"id":"a"}]`), Condition{}))
		require.NoError(t, d.Put(ctx, key, []byte(`[{"id":"b"}]`), Condition{}))

		doc, err := d.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"b"}]`, string(doc.Body))
	})

	t.Run("conditional create", func(t *testing.T) {
		d := open(t)

		require.NoError(t, d.Put(ctx, key, []byte("[1]"), Condition{Check: true}))
		err := d.Put(ctx, key, []byte("[2]"), Condition{Check: true})
		assert.ErrorIs(t, err, ErrVersionMismatch)

		doc, err := d.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "[1]", string(doc.Body))
	})

	t.Run("conditional update", func(t *testing.T) {
		d := open(t)
		require.NoError(t, d.Put(ctx, key, []byte("[1]"), Condition{}))

		doc, err := d.Get(ctx, key)
		require.NoError(t, err)

		require.NoError(t, d.Put(ctx, key, []byte("[2]"), Condition{Check: true, Version: doc.Version}))

		err = d.Put(ctx, key, []byte("[3]"), Condition{Check: true, Version: doc.Version})
		assert.ErrorIs(t, err, ErrVersionMismatch)

		doc, err = d.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "[2]", string(doc.Body))
	})

	t.Run("conditional update of missing document", func(t *testing.T) {
		d := open(t)

		err := d.Put(ctx, key, []byte("[1]"), Condition{Check: true, Version: Checksum([]byte("[0]"))})
		assert.ErrorIs(t, err, ErrVersionMismatch)

		_, err = d.Get(ctx, key)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("keys are independent", func(t *testing.T) {
		d := open(t)

		require.NoError(t, d.Put(ctx, "a/entries.json", []byte("[1]"), Condition{}))
		require.NoError(t, d.Put(ctx, "b/entries.json", []byte("[2]"), Condition{}))

		a, err := d.Get(ctx, "a/entries.json")
		require.NoError(t, err)
		b, err := d.Get(ctx, "b/entries.json")
		require.NoError(t, err)
		assert.Equal(t, "[1]", string(a.Body))
		assert.Equal(t, "[2]", string(b.Body))
	})
}

func TestCondition_SatisfiedBy(t *testing.T) {
	assert.True(t, Condition{}.satisfiedBy("", false))
	assert.True(t, Condition{}.satisfiedBy("abc", true))
	assert.True(t, Condition{Check: true}.satisfiedBy("", false))
	assert.False(t, Condition{Check: true}.satisfiedBy("abc", true))
	assert.True(t, Condition{Check: true, Version: "abc"}.satisfiedBy("abc", true))
	assert.False(t, Condition{Check: true, Version: "abc"}.satisfiedBy("def", true))
	assert.False(t, Condition{Check: true, Version: "abc"}.satisfiedBy("", false))
}
