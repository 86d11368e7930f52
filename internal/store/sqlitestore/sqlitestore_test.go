package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_PutGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, FileName))

	_, ok, err := s.Get(ctx, "records")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "records", []byte(`[]`)))
	require.NoError(t, s.Put(ctx, "records", []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Close())

	// Reopen to make sure the value hit the file.
	s, err = Open(ctx, dir)
	require.NoError(t, err)
	defer s.Close()

	b, ok, err := s.Get(ctx, "records")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, string(b))
}

func TestSQLiteStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, "b", []byte("2")))

	b, _, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(b))
}
