package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/forkeys/internal/logger"
)

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "vault.db")

	s, err := NewBoltStore(path, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, KeyVerifier, "v1"))
	require.NoError(t, s.Put(ctx, KeyData, "d1"))
	require.NoError(t, s.Delete(ctx, KeyData))
	require.NoError(t, s.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	s, err = NewBoltStore(path, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, KeyVerifier)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	_, ok, err = s.Get(ctx, KeyData)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltStore_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "vault.db"), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get(ctx, KeyData)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, s.Put(ctx, KeyData, "x"), ErrStorage)
	assert.ErrorIs(t, s.Delete(ctx, KeyData), ErrStorage)
}

func TestBoltStore_Apply(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := NewBoltStore(path, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyRecovery, "wrapped"))

	b, ok := s.(Batcher)
	require.True(t, ok)
	require.NoError(t, b.Apply(ctx, []Entry{
		{Key: KeyData, Value: "d"},
		{Key: KeyVerifier, Value: "v"},
		{Key: KeyRecovery, Delete: true},
	}))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, KeyVerifier)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok, err = s.Get(ctx, KeyRecovery)
	require.NoError(t, err)
	assert.False(t, ok)

	// an empty key fails inside the transaction; nothing of the batch lands
	err = s.(Batcher).Apply(ctx, []Entry{
		{Key: KeyData, Value: "half-written"},
		{Key: "", Value: "bad"},
	})
	assert.ErrorIs(t, err, ErrStorage)
	v, _, err = s.Get(ctx, KeyData)
	require.NoError(t, err)
	assert.Equal(t, "d", v)
}
