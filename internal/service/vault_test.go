package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/mock"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── lifecycle ────────────────────────────────────────────────────────────────

func TestVault_InitializeThenUnlock(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	v := newTestVault(t, kv)
	assert.Equal(t, StateNoVault, v.State())

	require.NoError(t, v.Initialize(ctx, testPassword, testPassword))
	assert.Equal(t, StateUnlocked, v.State())
	records, err := v.Records(models.RecordFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.Equal(t, "1700000000000", mustGet(t, kv, store.KeyCreatedAt))
	assert.Equal(t, "weekly", mustGet(t, kv, store.KeyBackupFreq))
	assert.NotEmpty(t, mustGet(t, kv, store.KeyData))

	v.Lock()
	assert.Equal(t, StateLocked, v.State())

	require.NoError(t, v.Unlock(ctx, testPassword))
	assert.Equal(t, StateUnlocked, v.State())
	assert.Equal(t, 0, v.RecordCount())
}

func TestVault_InitializeValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     ErrorKind
	}{
		{"empty", "", "", PasswordEmpty},
		{"too short", "abc", "abc", PasswordTooShort},
		{"too short multibyte", "密码", "密码", PasswordTooShort},
		{"mismatch", "abcd", "abce", PasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryStore()
			v := newTestVault(t, kv)

			err := v.Initialize(context.Background(), tt.password, tt.confirm)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, StateNoVault, v.State())
			assert.True(t, absent(t, kv, store.KeyVerifier))
		})
	}
}

func TestVault_InitializeTwice(t *testing.T) {
	v, _ := newUnlockedVault(t)

	err := v.Initialize(context.Background(), "another", "another")
	assert.ErrorIs(t, err, ErrVaultExists)
}

func TestVault_OpensLockedWhenVerifierPersisted(t *testing.T) {
	_, kv := newUnlockedVault(t)

	reopened := newTestVault(t, kv)
	assert.Equal(t, StateLocked, reopened.State())
}

func TestVault_UnlockWrongPassword(t *testing.T) {
	v, _ := newUnlockedVault(t)
	v.Lock()

	err := v.Unlock(context.Background(), "WrongPass")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, StateLocked, v.State())
	assert.Nil(t, v.password)
}

func TestVault_UnlockWithoutVault(t *testing.T) {
	v := newTestVault(t, store.NewMemoryStore())

	err := v.Unlock(context.Background(), testPassword)
	assert.ErrorIs(t, err, ErrNoVaultFound)
	assert.Equal(t, StateNoVault, v.State())
}

func TestVault_UnlockTreatsBadDataAsEmpty(t *testing.T) {
	ctx := context.Background()

	for name, data := range map[string]string{
		"empty":         "",
		"garbage":       "not-a-ciphertext",
		"other key":     mustEncrypt(t, `[{"id":"1","title":"x"}]`, "someone else"),
		"not json list": mustEncrypt(t, `{"id":"1"}`, testPassword),
	} {
		t.Run(name, func(t *testing.T) {
			v, kv := newUnlockedVault(t)
			v.Lock()
			require.NoError(t, kv.Put(ctx, store.KeyData, data))

			require.NoError(t, v.Unlock(ctx, testPassword))
			assert.Equal(t, 0, v.RecordCount())
		})
	}
}

func TestVault_LockZeroesSecrets(t *testing.T) {
	v, _ := newUnlockedVault(t)
	_, err := v.SaveRecord(context.Background(), models.VaultRecord{ID: "1", Title: "Github", Secret: "s3cret"})
	require.NoError(t, err)

	password := v.password
	records := v.records

	v.Lock()

	assert.Equal(t, make([]byte, len(password)), password)
	for _, r := range records {
		assert.Equal(t, models.VaultRecord{}, r)
	}
	assert.Nil(t, v.password)
	assert.Nil(t, v.records)

	// locking twice is tolerated
	v.Lock()
	assert.Equal(t, StateLocked, v.State())
}

func TestVault_OperationsRequireUnlocked(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)
	v.Lock()

	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "x"})
	assert.ErrorIs(t, err, ErrVaultLocked)
	assert.ErrorIs(t, v.DeleteRecord(ctx, "1"), ErrVaultLocked)
	assert.ErrorIs(t, v.DeleteAllData(ctx), ErrVaultLocked)
	assert.ErrorIs(t, v.ChangePassword(ctx, testPassword, "newpass", "newpass"), ErrVaultLocked)
	_, err = v.Records(models.RecordFilter{})
	assert.ErrorIs(t, err, ErrVaultLocked)
	_, err = v.Record("1")
	assert.ErrorIs(t, err, ErrVaultLocked)
	_, err = v.MergeRecords(ctx, nil)
	assert.ErrorIs(t, err, ErrVaultLocked)
	assert.ErrorIs(t, v.ReplaceRecords(ctx, nil), ErrVaultLocked)
	assert.ErrorIs(t, v.WithMasterPassword(func([]byte) error { return nil }), ErrVaultLocked)
}

// ── records ──────────────────────────────────────────────────────────────────

func TestVault_SaveRecordUpserts(t *testing.T) {
	ctx := context.Background()
	v, kv := newUnlockedVault(t)

	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "Github", Category: models.CategoryWork})
	require.NoError(t, err)
	_, err = v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "Github2", Category: models.CategoryWork})
	require.NoError(t, err)

	records, err := v.Records(models.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Github2", records[0].Title)

	// committed: a fresh instance sees the same set
	reopened := newTestVault(t, kv)
	require.NoError(t, reopened.Unlock(ctx, testPassword))
	got, err := reopened.Record("1")
	require.NoError(t, err)
	assert.Equal(t, "Github2", got.Title)
}

func TestVault_SaveRecordDefaults(t *testing.T) {
	v, _ := newUnlockedVault(t)

	saved, err := v.SaveRecord(context.Background(), models.VaultRecord{Title: "Mail"})
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", saved.ID)
	assert.Equal(t, models.CategoryOther, saved.Category)

	// the clock did not move, the next id must still be unique
	next, err := v.SaveRecord(context.Background(), models.VaultRecord{Title: "Bank", Category: "nonsense"})
	require.NoError(t, err)
	assert.Equal(t, "1700000000001", next.ID)
	assert.Equal(t, models.CategoryOther, next.Category)
}

func TestVault_SaveRecordTitleRequired(t *testing.T) {
	v, _ := newUnlockedVault(t)

	_, err := v.SaveRecord(context.Background(), models.VaultRecord{ID: "1", Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.Equal(t, CategoryValidation, KindOf(err).Category())
	assert.Equal(t, 0, v.RecordCount())
}

func TestVault_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)
	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "a"})
	require.NoError(t, err)
	_, err = v.SaveRecord(ctx, models.VaultRecord{ID: "2", Title: "b"})
	require.NoError(t, err)

	require.NoError(t, v.DeleteRecord(ctx, "1"))
	require.NoError(t, v.DeleteRecord(ctx, "missing"))

	_, err = v.Record("1")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, 1, v.RecordCount())
}

func TestVault_DeleteAllData(t *testing.T) {
	ctx := context.Background()
	v, kv := newUnlockedVault(t)
	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "a"})
	require.NoError(t, err)

	require.NoError(t, v.DeleteAllData(ctx))
	assert.Equal(t, 0, v.RecordCount())

	reopened := newTestVault(t, kv)
	require.NoError(t, reopened.Unlock(ctx, testPassword))
	assert.Equal(t, 0, reopened.RecordCount())
}

func TestVault_SaveRecordStorageFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	engine := newTestEngine()
	verifier, err := engine.MakeVerifier(testPassword)
	require.NoError(t, err)

	kv := mock.NewMockKeyValueStore(ctrl)
	gomock.InOrder(
		kv.EXPECT().Get(gomock.Any(), store.KeyVerifier).Return(verifier, true, nil),
		kv.EXPECT().Get(gomock.Any(), store.KeyVerifier).Return(verifier, true, nil),
		kv.EXPECT().Get(gomock.Any(), store.KeyData).Return("", false, nil),
		kv.EXPECT().Put(gomock.Any(), store.KeyData, gomock.Any()).Return(errDiskFull),
	)

	svc, err := NewVaultService(ctx, kv, engine, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, svc.Unlock(ctx, testPassword))

	_, err = svc.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "Github"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageError)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 0, svc.RecordCount())
}

func TestNewVaultService_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := mock.NewMockKeyValueStore(ctrl)
	kv.EXPECT().Get(gomock.Any(), store.KeyVerifier).Return("", false, errDiskFull)

	_, err := NewVaultService(context.Background(), kv, newTestEngine(), logger.Nop())
	assert.ErrorIs(t, err, ErrStorageError)
}

func TestVault_InitializeRollsBackOnFailure(t *testing.T) {
	kv := newFaultyStore()
	kv.failPut[store.KeyVerifier] = errDiskFull
	v := newTestVault(t, kv)

	err := v.Initialize(context.Background(), testPassword, testPassword)
	assert.ErrorIs(t, err, ErrStorageError)
	assert.Equal(t, StateNoVault, v.State())
	assert.True(t, absent(t, kv, store.KeyData))
	assert.True(t, absent(t, kv, store.KeyCreatedAt))
}

// ── change password ──────────────────────────────────────────────────────────

func TestVault_ChangePassword(t *testing.T) {
	ctx := context.Background()
	v, kv := newUnlockedVault(t)
	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "Github"})
	require.NoError(t, err)

	require.NoError(t, v.ChangePassword(ctx, testPassword, "n3wPass", "n3wPass"))

	reopened := newTestVault(t, kv)
	assert.ErrorIs(t, reopened.Unlock(ctx, testPassword), ErrWrongPassword)
	require.NoError(t, reopened.Unlock(ctx, "n3wPass"))
	got, err := reopened.Record("1")
	require.NoError(t, err)
	assert.Equal(t, "Github", got.Title)
}

func TestVault_ChangePasswordValidation(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)

	assert.ErrorIs(t, v.ChangePassword(ctx, "wrong", "n3wPass", "n3wPass"), ErrWrongCurrentPassword)
	assert.ErrorIs(t, v.ChangePassword(ctx, testPassword, "", ""), ErrPasswordEmpty)
	assert.ErrorIs(t, v.ChangePassword(ctx, testPassword, "abc", "abc"), ErrPasswordTooShort)
	assert.ErrorIs(t, v.ChangePassword(ctx, testPassword, "abcd", "abcx"), ErrPasswordMismatch)

	// still the old password
	assert.NoError(t, v.ChangePassword(ctx, testPassword, testPassword, testPassword))
}

func TestVault_ChangePasswordRollsBackData(t *testing.T) {
	ctx := context.Background()
	kv := newFaultyStore()
	v := newTestVault(t, kv)
	require.NoError(t, v.Initialize(ctx, testPassword, testPassword))
	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "Github"})
	require.NoError(t, err)

	kv.failPut[store.KeyVerifier] = errDiskFull
	err = v.ChangePassword(ctx, testPassword, "n3wPass", "n3wPass")
	assert.ErrorIs(t, err, ErrStorageError)
	delete(kv.failPut, store.KeyVerifier)

	// data and verifier both still belong to the old password
	reopened := newTestVault(t, kv)
	require.NoError(t, reopened.Unlock(ctx, testPassword))
	got, err := reopened.Record("1")
	require.NoError(t, err)
	assert.Equal(t, "Github", got.Title)

	// and the session kept the old password too
	assert.NoError(t, v.WithMasterPassword(func(pw []byte) error {
		assert.Equal(t, testPassword, string(pw))
		return nil
	}))
}

func TestVault_CreatedAt(t *testing.T) {
	v, _ := newUnlockedVault(t)

	created, err := v.CreatedAt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1700000000000), created)

	empty := newTestVault(t, store.NewMemoryStore())
	created, err = empty.CreatedAt(context.Background())
	require.NoError(t, err)
	assert.True(t, created.IsZero())
}

// ── merge / replace / restore ────────────────────────────────────────────────

func TestVault_MergeRecordsNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)
	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "local"})
	require.NoError(t, err)

	added, err := v.MergeRecords(ctx, []models.VaultRecord{
		{ID: "1", Title: "imported"},
		{ID: "2", Title: "new"},
		{ID: "2", Title: "duplicate"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	one, err := v.Record("1")
	require.NoError(t, err)
	assert.Equal(t, "local", one.Title)
	two, err := v.Record("2")
	require.NoError(t, err)
	assert.Equal(t, "new", two.Title)
	assert.Equal(t, 2, v.RecordCount())
}

func TestVault_ReplaceRecords(t *testing.T) {
	ctx := context.Background()
	v, _ := newUnlockedVault(t)
	_, err := v.SaveRecord(ctx, models.VaultRecord{ID: "1", Title: "local"})
	require.NoError(t, err)

	imported := []models.VaultRecord{{ID: "7", Title: "a"}, {ID: "8", Title: "b"}}
	require.NoError(t, v.ReplaceRecords(ctx, imported))

	got, err := v.Records(models.RecordFilter{Sort: models.SortOldest})
	require.NoError(t, err)
	assert.Equal(t, imported, got)
}

func TestVault_RestoreOnFreshStore(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine()
	verifier, err := engine.MakeVerifier(testPassword)
	require.NoError(t, err)

	kv := store.NewMemoryStore()
	v := newTestVault(t, kv)
	records := []models.VaultRecord{{ID: "1", Title: "Github"}}

	require.NoError(t, v.Restore(ctx, verifier, testPassword, records))
	assert.Equal(t, StateUnlocked, v.State())
	assert.Equal(t, verifier, mustGet(t, kv, store.KeyVerifier))
	assert.Equal(t, "weekly", mustGet(t, kv, store.KeyBackupFreq))

	reopened := newTestVault(t, kv)
	require.NoError(t, reopened.Unlock(ctx, testPassword))
	assert.Equal(t, 1, reopened.RecordCount())
}

func TestVault_RestoreRejectsWrongPassword(t *testing.T) {
	engine := newTestEngine()
	verifier, err := engine.MakeVerifier(testPassword)
	require.NoError(t, err)

	v := newTestVault(t, store.NewMemoryStore())
	err = v.Restore(context.Background(), verifier, "other", nil)
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, StateNoVault, v.State())
}

// ── query ────────────────────────────────────────────────────────────────────

func TestQueryRecords(t *testing.T) {
	records := []models.VaultRecord{
		{ID: "20", Title: "beta", User: "bob", Category: models.CategoryWork},
		{ID: "3", Title: "Alpha", User: "alice@mail", Category: models.CategoryEmail},
		{ID: "legacy", Title: "gamma", Category: models.CategoryOther},
		{ID: "100", Title: "delta", Hidden: true, Category: models.CategoryWork},
	}

	ids := func(rs []models.VaultRecord) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter models.RecordFilter
		want   []string
	}{
		{"default newest hides hidden", models.RecordFilter{}, []string{"20", "3", "legacy"}},
		{"show hidden", models.RecordFilter{ShowHidden: true}, []string{"100", "20", "3", "legacy"}},
		{"oldest", models.RecordFilter{Sort: models.SortOldest}, []string{"3", "20", "legacy"}},
		{"name", models.RecordFilter{Sort: models.SortName}, []string{"3", "20", "legacy"}},
		{"category", models.RecordFilter{Category: models.CategoryWork, ShowHidden: true}, []string{"100", "20"}},
		{"query title case-insensitive", models.RecordFilter{Query: "ALPHA"}, []string{"3"}},
		{"query user", models.RecordFilter{Query: "bob"}, []string{"20"}},
		{"no match", models.RecordFilter{Query: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(queryRecords(records, tt.filter)))
		})
	}

	// the input is never reordered
	assert.Equal(t, "20", records[0].ID)
}

func mustEncrypt(t *testing.T, plain, password string) string {
	t.Helper()
	c, err := newTestEngine().Encrypt([]byte(plain), password)
	require.NoError(t, err)
	return c
}
