// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/internal/validators"
	"github.com/MKhiriev/forkeys/models"
)

// MinPasswordLength is the minimal master password length in characters.
const MinPasswordLength = 4

type vaultService struct {
	mu sync.Mutex

	store     store.KeyValueStore
	engine    crypto.CipherEngine
	validator validators.Validator
	now       func() time.Time

	state    VaultState
	password []byte
	records  []models.VaultRecord

	logger *logger.Logger
}

// VaultOption customises a vault built by [NewVaultService].
type VaultOption func(*vaultService)

// WithClock replaces time.Now, used for record ids and the creation time.
func WithClock(now func() time.Time) VaultOption {
	return func(v *vaultService) { v.now = now }
}

// NewVaultService constructs the vault state machine on top of kv. The
// initial state is Locked when a verifier is persisted and NoVault otherwise.
func NewVaultService(ctx context.Context, kv store.KeyValueStore, engine crypto.CipherEngine, logger *logger.Logger, opts ...VaultOption) (VaultService, error) {
	v := &vaultService{
		store:     kv,
		engine:    engine,
		validator: validators.NewVaultValidator(),
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(v)
	}

	verifier, ok, err := kv.Get(ctx, store.KeyVerifier)
	if err != nil {
		return nil, newError(StorageError, "open vault", err)
	}
	v.state = StateNoVault
	if ok && verifier != "" {
		v.state = StateLocked
	}

	return v, nil
}

func (v *vaultService) State() VaultState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *vaultService) RecordCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.records)
}

func (v *vaultService) Initialize(ctx context.Context, password, confirm string) error {
	const op = "initialize"

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateNoVault {
		return newError(VaultExists, op, nil)
	}
	if err := validateNewPassword(op, password, confirm); err != nil {
		return err
	}

	verifier, err := v.engine.MakeVerifier(password)
	if err != nil {
		return newError(KindUnknown, op, err)
	}
	data, err := v.encryptRecords(nil, password)
	if err != nil {
		return newError(KindUnknown, op, err)
	}

	// the verifier goes last: a half-written vault still reads as NoVault
	entries := []kvEntry{
		{key: store.KeyData, value: data},
		{key: store.KeyCreatedAt, value: strconv.FormatInt(v.now().UnixMilli(), 10)},
		{key: store.KeyBackupFreq, value: string(models.DefaultBackupFrequency)},
		{key: store.KeyVerifier, value: verifier},
	}
	if err = writeBatch(ctx, v.store, v.logger, entries); err != nil {
		v.logger.Err(err).Str("op", op).Msg("failed to persist new vault")
		return newError(StorageError, op, err)
	}

	v.adopt(password, nil)
	v.logger.Info().Str("op", op).Msg("vault created")
	return nil
}

func (v *vaultService) Unlock(ctx context.Context, password string) error {
	const op = "unlock"

	v.mu.Lock()
	defer v.mu.Unlock()

	verifier, ok, err := v.store.Get(ctx, store.KeyVerifier)
	if err != nil {
		return newError(StorageError, op, err)
	}
	if !ok || verifier == "" {
		v.state = StateNoVault
		return newError(NoVaultFound, op, nil)
	}
	if !v.engine.Verify(password, verifier) {
		v.logger.Warn().Str("op", op).Msg("wrong master password")
		return newError(WrongPassword, op, nil)
	}

	records, err := v.loadRecords(ctx, password)
	if err != nil {
		return newError(StorageError, op, err)
	}

	v.adopt(password, records)
	v.logger.Info().Str("op", op).Int("records", len(records)).Msg("vault unlocked")
	return nil
}

func (v *vaultService) Lock() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateUnlocked {
		return
	}
	v.discard()
	v.state = StateLocked
	v.logger.Info().Msg("vault locked")
}

func (v *vaultService) SaveRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	const op = "save record"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return models.VaultRecord{}, err
	}

	if record.ID == "" {
		record.ID = v.nextID()
	}
	if !record.Category.IsValid() {
		record.Category = models.CategoryOther
	}
	if err := v.validator.Validate(ctx, record, validators.FieldID, validators.FieldTitle); err != nil {
		if errors.Is(err, validators.ErrTitleRequired) {
			return models.VaultRecord{}, newError(TitleRequired, op, nil)
		}
		return models.VaultRecord{}, newError(KindUnknown, op, err)
	}

	updated := make([]models.VaultRecord, 0, len(v.records)+1)
	replaced := false
	for _, r := range v.records {
		if r.ID == record.ID {
			r = record
			replaced = true
		}
		updated = append(updated, r)
	}
	if !replaced {
		updated = append([]models.VaultRecord{record}, updated...)
	}

	if err := v.commit(ctx, op, updated); err != nil {
		return models.VaultRecord{}, err
	}
	return record, nil
}

func (v *vaultService) DeleteRecord(ctx context.Context, id string) error {
	const op = "delete record"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return err
	}

	updated := make([]models.VaultRecord, 0, len(v.records))
	for _, r := range v.records {
		if r.ID != id {
			updated = append(updated, r)
		}
	}

	return v.commit(ctx, op, updated)
}

func (v *vaultService) DeleteAllData(ctx context.Context) error {
	const op = "delete all data"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return err
	}

	return v.commit(ctx, op, []models.VaultRecord{})
}

func (v *vaultService) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	const op = "change password"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(current), v.password) != 1 {
		return newError(WrongCurrentPassword, op, nil)
	}
	if err := validateNewPassword(op, newPassword, confirm); err != nil {
		return err
	}

	verifier, err := v.engine.MakeVerifier(newPassword)
	if err != nil {
		return newError(KindUnknown, op, err)
	}
	data, err := v.encryptRecords(v.records, newPassword)
	if err != nil {
		return newError(KindUnknown, op, err)
	}
	recovery, err := v.rewrapRecovery(ctx, current, newPassword)
	if err != nil {
		return newError(StorageError, op, err)
	}

	entries := append([]kvEntry{
		{key: store.KeyData, value: data},
		{key: store.KeyVerifier, value: verifier},
	}, recovery...)
	if err = writeBatch(ctx, v.store, v.logger, entries); err != nil {
		v.logger.Err(err).Str("op", op).Msg("failed to persist new master password")
		return newError(StorageError, op, err)
	}

	crypto.ClearBytes(v.password)
	v.password = []byte(newPassword)
	v.logger.Info().Str("op", op).Msg("master password changed")
	return nil
}

func (v *vaultService) Records(filter models.RecordFilter) ([]models.VaultRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked("list records"); err != nil {
		return nil, err
	}

	return queryRecords(v.records, filter), nil
}

func (v *vaultService) Record(id string) (models.VaultRecord, error) {
	const op = "get record"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return models.VaultRecord{}, err
	}
	for _, r := range v.records {
		if r.ID == id {
			return r, nil
		}
	}

	return models.VaultRecord{}, newError(RecordNotFound, op, nil)
}

func (v *vaultService) CreatedAt(ctx context.Context) (time.Time, error) {
	raw, ok, err := v.store.Get(ctx, store.KeyCreatedAt)
	if err != nil {
		return time.Time{}, newError(StorageError, "created at", err)
	}
	if !ok {
		return time.Time{}, nil
	}
	return parseMillis(raw), nil
}

func (v *vaultService) WithMasterPassword(fn func(password []byte) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked("use master password"); err != nil {
		return err
	}
	return fn(v.password)
}

func (v *vaultService) MergeRecords(ctx context.Context, records []models.VaultRecord) (int, error) {
	const op = "merge records"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(v.records)+len(records))
	merged := make([]models.VaultRecord, 0, len(v.records)+len(records))
	for _, r := range v.records {
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	added := 0
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := v.commit(ctx, op, merged); err != nil {
		return 0, err
	}
	return added, nil
}

func (v *vaultService) ReplaceRecords(ctx context.Context, records []models.VaultRecord) error {
	const op = "replace records"

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.requireUnlocked(op); err != nil {
		return err
	}

	return v.commit(ctx, op, dedupeRecords(records))
}

func (v *vaultService) Restore(ctx context.Context, verifier, password string, records []models.VaultRecord) error {
	const op = "restore"

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.engine.Verify(password, verifier) {
		return newError(WrongPassword, op, nil)
	}

	records = dedupeRecords(records)
	data, err := v.encryptRecords(records, password)
	if err != nil {
		return newError(KindUnknown, op, err)
	}

	entries := []kvEntry{{key: store.KeyData, value: data}}

	keepRecovery := false
	oldVerifier, ok, err := v.store.Get(ctx, store.KeyVerifier)
	if err != nil {
		return newError(StorageError, op, err)
	}
	if ok && oldVerifier != "" {
		// the local recovery artifact wraps the old password and stays
		// valid only when the restored vault uses the same one
		keepRecovery = v.engine.Verify(password, oldVerifier)
	} else {
		entries = append(entries,
			kvEntry{key: store.KeyCreatedAt, value: strconv.FormatInt(v.now().UnixMilli(), 10)},
			kvEntry{key: store.KeyBackupFreq, value: string(models.DefaultBackupFrequency)},
		)
	}
	if !keepRecovery {
		entries = append(entries, recoveryRemoval()...)
	}
	entries = append(entries, kvEntry{key: store.KeyVerifier, value: verifier})

	if err = writeBatch(ctx, v.store, v.logger, entries); err != nil {
		v.logger.Err(err).Str("op", op).Msg("failed to persist restored vault")
		return newError(StorageError, op, err)
	}

	v.discard()
	v.adopt(password, records)
	v.logger.Info().Str("op", op).Int("records", len(records)).Bool("kept_recovery", keepRecovery).Msg("vault restored")
	return nil
}

func (v *vaultService) requireUnlocked(op string) error {
	if v.state != StateUnlocked {
		return newError(VaultLocked, op, nil)
	}
	return nil
}

// adopt makes password and records the in-memory state. The password is
// copied so that it can be zeroed on lock.
func (v *vaultService) adopt(password string, records []models.VaultRecord) {
	v.password = []byte(password)
	if records == nil {
		records = []models.VaultRecord{}
	}
	v.records = records
	v.state = StateUnlocked
}

// discard overwrites the in-memory secrets.
func (v *vaultService) discard() {
	crypto.ClearBytes(v.password)
	v.password = nil
	for i := range v.records {
		v.records[i] = models.VaultRecord{}
	}
	v.records = nil
}

// commit encrypts records under the master password and persists them
// before adopting them as the in-memory set. On failure the previous set is
// kept.
func (v *vaultService) commit(ctx context.Context, op string, records []models.VaultRecord) error {
	data, err := v.encryptRecords(records, string(v.password))
	if err != nil {
		return newError(KindUnknown, op, err)
	}
	if err = v.store.Put(ctx, store.KeyData, data); err != nil {
		v.logger.Err(err).Str("op", op).Msg("failed to persist vault data")
		return newError(StorageError, op, err)
	}

	v.records = records
	v.logger.Debug().Str("op", op).Int("records", len(records)).Msg("vault data committed")
	return nil
}

func (v *vaultService) encryptRecords(records []models.VaultRecord, password string) (string, error) {
	if records == nil {
		records = []models.VaultRecord{}
	}
	plain, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(plain)

	return v.engine.Encrypt(plain, password)
}

// loadRecords returns the persisted record set. Absent, empty, undecryptable
// or malformed data is an empty set; only storage failures are errors.
func (v *vaultService) loadRecords(ctx context.Context, password string) ([]models.VaultRecord, error) {
	data, ok, err := v.store.Get(ctx, store.KeyData)
	if err != nil {
		return nil, err
	}
	if !ok || data == "" {
		return nil, nil
	}

	plain, err := v.engine.Decrypt(data, password)
	if err != nil {
		v.logger.Warn().Err(err).Msg("vault data is not decryptable, starting with an empty set")
		return nil, nil
	}
	defer crypto.ClearBytes(plain)

	var records []models.VaultRecord
	if err = json.Unmarshal(plain, &records); err != nil {
		v.logger.Warn().Err(err).Msg("vault data is malformed, starting with an empty set")
		return nil, nil
	}

	return dedupeRecords(records), nil
}

// nextID returns a timestamp id that is not used by any record.
func (v *vaultService) nextID() string {
	ms := v.now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !v.hasRecord(id) {
			return id
		}
		ms++
	}
}

func (v *vaultService) hasRecord(id string) bool {
	for _, r := range v.records {
		if r.ID == id {
			return true
		}
	}
	return false
}

func validateNewPassword(op, password, confirm string) error {
	switch {
	case password == "":
		return newError(PasswordEmpty, op, nil)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return newError(PasswordTooShort, op, nil)
	case password != confirm:
		return newError(PasswordMismatch, op, nil)
	}
	return nil
}

// dedupeRecords keeps the first record of every id.
func dedupeRecords(records []models.VaultRecord) []models.VaultRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.VaultRecord, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func parseMillis(raw string) time.Time {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// kvEntry is a single write of a batch. Empty value with del set removes
// the key.
type kvEntry struct {
	key   string
	value string
	del   bool
}

type kvSnapshot struct {
	key     string
	value   string
	present bool
}

// writeBatch commits entries in one transaction when the store is a
// [store.Batcher]. Other stores get the writes in order, and on failure the
// keys written so far are restored to their previous values, best effort.
func writeBatch(ctx context.Context, kv store.KeyValueStore, log *logger.Logger, entries []kvEntry) error {
	if b, ok := kv.(store.Batcher); ok {
		batch := make([]store.Entry, len(entries))
		for i, e := range entries {
			batch[i] = store.Entry{Key: e.key, Value: e.value, Delete: e.del}
		}
		return b.Apply(ctx, batch)
	}

	applied := make([]kvSnapshot, 0, len(entries))

	for _, e := range entries {
		prev, ok, err := kv.Get(ctx, e.key)
		if err != nil {
			rollback(ctx, kv, log, applied)
			return err
		}

		if e.del {
			err = kv.Delete(ctx, e.key)
		} else {
			err = kv.Put(ctx, e.key, e.value)
		}
		if err != nil {
			rollback(ctx, kv, log, applied)
			return err
		}
		applied = append(applied, kvSnapshot{key: e.key, value: prev, present: ok})
	}

	return nil
}

func rollback(ctx context.Context, kv store.KeyValueStore, log *logger.Logger, applied []kvSnapshot) {
	for i := len(applied) - 1; i >= 0; i-- {
		s := applied[i]
		var err error
		if s.present {
			err = kv.Put(ctx, s.key, s.value)
		} else {
			err = kv.Delete(ctx, s.key)
		}
		if err != nil {
			log.Err(err).Str("key", s.key).Msg("rollback of vault write failed")
		}
	}
}
