// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/internal/validators"
	"github.com/MKhiriev/forkeys/models"
)

const (
	BackupFilePrefix     = "forkeys_backup"
	AutoBackupFilePrefix = "forkeys_auto_backup"

	backupFileMode = 0o600
	backupDirMode  = 0o700

	// maxBackupSize bounds how much of an import source is read.
	maxBackupSize = 32 << 20
)

type backupService struct {
	vault     VaultSession
	store     store.KeyValueStore
	engine    crypto.CipherEngine
	settings  SettingsService
	validator validators.Validator

	logger *logger.Logger
}

func NewBackupService(vault VaultSession, kv store.KeyValueStore, engine crypto.CipherEngine, settings SettingsService, logger *logger.Logger) BackupService {
	return &backupService{
		vault:     vault,
		store:     kv,
		engine:    engine,
		settings:  settings,
		validator: validators.NewVaultValidator(),
		logger:    logger,
	}
}

func (b *backupService) Export(ctx context.Context, now time.Time) (models.BackupFile, error) {
	return b.export(ctx, BackupFilePrefix, now)
}

func (b *backupService) ExportToFile(ctx context.Context, dir string, now time.Time) (string, error) {
	return b.exportToFile(ctx, dir, BackupFilePrefix, now)
}

func (b *backupService) AutoBackup(ctx context.Context, dir string, now time.Time) (string, error) {
	return b.exportToFile(ctx, dir, AutoBackupFilePrefix, now)
}

func (b *backupService) export(ctx context.Context, prefix string, now time.Time) (models.BackupFile, error) {
	const op = "export"

	verifier, ok, err := b.store.Get(ctx, store.KeyVerifier)
	if err != nil {
		return models.BackupFile{}, newError(StorageError, op, err)
	}
	if !ok || verifier == "" {
		return models.BackupFile{}, newError(NoVaultFound, op, nil)
	}
	data, _, err := b.store.Get(ctx, store.KeyData)
	if err != nil {
		return models.BackupFile{}, newError(StorageError, op, err)
	}

	env := models.BackupEnvelope{
		Version:   models.BackupVersion,
		Timestamp: now.UTC().Format(models.BackupTimestampLayout),
		Verifier:  verifier,
		Data:      data,
	}
	content, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return models.BackupFile{}, newError(KindUnknown, op, err)
	}

	return models.BackupFile{
		Envelope: env,
		FileName: models.BackupFileName(prefix, now),
		Content:  content,
	}, nil
}

func (b *backupService) exportToFile(ctx context.Context, dir, prefix string, now time.Time) (string, error) {
	const op = "export to file"

	file, err := b.export(ctx, prefix, now)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(dir, backupDirMode); err != nil {
		return "", newError(StorageError, op, err)
	}
	path := filepath.Join(dir, file.FileName)
	if err = os.WriteFile(path, file.Content, backupFileMode); err != nil {
		b.logger.Err(err).Str("path", path).Msg("failed to write backup file")
		return "", newError(StorageError, op, err)
	}
	if err = b.settings.SetLastBackup(ctx, now); err != nil {
		return path, err
	}

	b.logger.Info().Str("path", path).Msg("backup written")
	return path, nil
}

func (b *backupService) ParseEnvelope(data []byte) (models.BackupEnvelope, error) {
	const op = "parse backup"

	var env models.BackupEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.BackupEnvelope{}, newError(InvalidBackupFormat, op, err)
	}
	if err := b.validator.Validate(context.Background(), env); err != nil {
		return models.BackupEnvelope{}, newError(InvalidBackupFormat, op, err)
	}
	return env, nil
}

func (b *backupService) ImportFile(ctx context.Context, path, password string, mode models.ImportMode) (models.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImportResult{}, newError(StorageError, "import", err)
	}
	defer f.Close()

	return b.Import(ctx, f, password, mode)
}

func (b *backupService) Import(ctx context.Context, r io.Reader, password string, mode models.ImportMode) (models.ImportResult, error) {
	const op = "import"

	if _, err := models.ParseImportMode(string(mode)); err != nil {
		return models.ImportResult{}, newError(KindUnknown, op, err)
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxBackupSize))
	if err != nil {
		return models.ImportResult{}, newError(StorageError, op, err)
	}
	env, err := b.ParseEnvelope(raw)
	if err != nil {
		return models.ImportResult{}, err
	}
	if !b.engine.Verify(password, env.Verifier) {
		return models.ImportResult{}, newError(WrongPassword, op, nil)
	}

	records, err := b.decodeRecords(ctx, env.Data, password)
	if err != nil {
		return models.ImportResult{}, newError(InvalidBackupFormat, op, err)
	}

	result := models.ImportResult{Mode: mode, Imported: len(records)}

	switch {
	case mode == models.ImportMerge && b.vault.State() == StateUnlocked:
		result.Added, err = b.vault.MergeRecords(ctx, records)

	case mode == models.ImportMerge && b.vault.State() == StateLocked:
		if err = b.vault.Unlock(ctx, password); err != nil {
			if KindOf(err) == WrongPassword {
				return models.ImportResult{}, newError(VaultLocked, op, nil)
			}
			return models.ImportResult{}, err
		}
		result.Added, err = b.vault.MergeRecords(ctx, records)

	case mode == models.ImportReplace && b.vault.State() == StateUnlocked:
		err = b.vault.ReplaceRecords(ctx, records)
		result.Added = len(records)

	default:
		// nothing to merge into or nothing unlocked to replace: restore
		err = b.vault.Restore(ctx, env.Verifier, password, records)
		result.Added = len(records)
		result.Restored = true
	}
	if err != nil {
		return models.ImportResult{}, err
	}

	result.Total = b.vault.RecordCount()
	b.logger.Info().
		Str("mode", string(mode)).
		Int("imported", result.Imported).
		Int("added", result.Added).
		Bool("restored", result.Restored).
		Msg("backup imported")
	return result, nil
}

// decodeRecords decrypts the envelope data. Empty data is an empty set.
// Duplicate ids keep their first record.
func (b *backupService) decodeRecords(ctx context.Context, data, password string) ([]models.VaultRecord, error) {
	if data == "" {
		return []models.VaultRecord{}, nil
	}

	plain, err := b.engine.Decrypt(data, password)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(plain)

	var records []models.VaultRecord
	if err = json.Unmarshal(plain, &records); err != nil {
		return nil, fmt.Errorf("malformed backup data: %w", err)
	}

	records = dedupeRecords(records)
	if err = b.validator.Validate(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}
