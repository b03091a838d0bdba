package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/stretchr/testify/require"
)

const testPassword = "Passw0rd!"

var errDiskFull = errors.New("disk full")

// newTestEngine keeps Argon2id cheap so tests stay fast.
func newTestEngine() crypto.CipherEngine {
	return crypto.NewEngine(crypto.Params{Time: 1, MemoryKiB: 64, Threads: 1})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestVault(t *testing.T, kv store.KeyValueStore) *vaultService {
	t.Helper()
	v, err := NewVaultService(context.Background(), kv, newTestEngine(), logger.Nop(),
		WithClock(fixedClock(time.UnixMilli(1700000000000))))
	require.NoError(t, err)
	return v.(*vaultService)
}

// newUnlockedVault returns a freshly initialized vault over an in-memory
// store.
func newUnlockedVault(t *testing.T) (*vaultService, store.KeyValueStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	v := newTestVault(t, kv)
	require.NoError(t, v.Initialize(context.Background(), testPassword, testPassword))
	return v, kv
}

// faultyStore wraps a store and fails writes of selected keys.
type faultyStore struct {
	store.KeyValueStore

	mu       sync.Mutex
	failPut  map[string]error
	putCalls []string
	delCalls []string
}

func newFaultyStore() *faultyStore {
	return &faultyStore{KeyValueStore: store.NewMemoryStore(), failPut: map[string]error{}}
}

func (f *faultyStore) Put(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.putCalls = append(f.putCalls, key)
	err := f.failPut[key]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	return f.KeyValueStore.Put(ctx, key, value)
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.delCalls = append(f.delCalls, key)
	f.mu.Unlock()
	return f.KeyValueStore.Delete(ctx, key)
}

func mustGet(t *testing.T, kv store.KeyValueStore, key string) string {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "key %s must be present", key)
	return v
}

func absent(t *testing.T, kv store.KeyValueStore, key string) bool {
	t.Helper()
	_, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return !ok
}
