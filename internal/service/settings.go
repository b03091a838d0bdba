package service

import (
	"context"
	"strconv"
	"time"

	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/models"
)

type settingsService struct {
	store store.KeyValueStore

	logger *logger.Logger
}

func NewSettingsService(kv store.KeyValueStore, logger *logger.Logger) SettingsService {
	return &settingsService{store: kv, logger: logger}
}

// BackupFrequency returns the stored frequency. Missing or unknown values
// read as the default.
func (s *settingsService) BackupFrequency(ctx context.Context) (models.BackupFrequency, error) {
	raw, ok, err := s.store.Get(ctx, store.KeyBackupFreq)
	if err != nil {
		return "", newError(StorageError, "backup frequency", err)
	}
	if !ok {
		return models.DefaultBackupFrequency, nil
	}
	freq, err := models.ParseBackupFrequency(raw)
	if err != nil {
		s.logger.Warn().Str("value", raw).Msg("unknown backup frequency stored, using default")
		return models.DefaultBackupFrequency, nil
	}
	return freq, nil
}

func (s *settingsService) SetBackupFrequency(ctx context.Context, freq models.BackupFrequency) error {
	if _, err := models.ParseBackupFrequency(string(freq)); err != nil {
		return newError(KindUnknown, "set backup frequency", err)
	}
	return s.put(ctx, "set backup frequency", store.KeyBackupFreq, string(freq))
}

func (s *settingsService) LastBackup(ctx context.Context) (time.Time, error) {
	raw, ok, err := s.store.Get(ctx, store.KeyLastBackup)
	if err != nil {
		return time.Time{}, newError(StorageError, "last backup", err)
	}
	if !ok {
		return time.Time{}, nil
	}
	return parseMillis(raw), nil
}

func (s *settingsService) SetLastBackup(ctx context.Context, at time.Time) error {
	return s.put(ctx, "set last backup", store.KeyLastBackup, strconv.FormatInt(at.UnixMilli(), 10))
}

// IsBackupDue is false for manual backups. Otherwise a backup is due when
// none was ever taken or the interval since the last one has elapsed.
func (s *settingsService) IsBackupDue(ctx context.Context, now time.Time) (bool, error) {
	freq, err := s.BackupFrequency(ctx)
	if err != nil {
		return false, err
	}
	interval := freq.Interval()
	if interval == 0 {
		return false, nil
	}

	last, err := s.LastBackup(ctx)
	if err != nil {
		return false, err
	}
	if last.IsZero() {
		return true, nil
	}
	return now.Sub(last) > interval, nil
}

func (s *settingsService) Theme(ctx context.Context) (models.Theme, error) {
	raw, ok, err := s.store.Get(ctx, store.KeyTheme)
	if err != nil {
		return "", newError(StorageError, "theme", err)
	}
	if !ok || models.Theme(raw) != models.ThemeLight {
		return models.ThemeDark, nil
	}
	return models.ThemeLight, nil
}

func (s *settingsService) SetTheme(ctx context.Context, theme models.Theme) error {
	if theme != models.ThemeDark && theme != models.ThemeLight {
		return newError(KindUnknown, "set theme", errUnknownPreference(string(theme)))
	}
	return s.put(ctx, "set theme", store.KeyTheme, string(theme))
}

func (s *settingsService) Language(ctx context.Context) (models.Language, error) {
	raw, ok, err := s.store.Get(ctx, store.KeyLanguage)
	if err != nil {
		return "", newError(StorageError, "language", err)
	}
	if !ok || models.Language(raw) != models.LanguageChinese {
		return models.LanguageEnglish, nil
	}
	return models.LanguageChinese, nil
}

func (s *settingsService) SetLanguage(ctx context.Context, lang models.Language) error {
	if lang != models.LanguageEnglish && lang != models.LanguageChinese {
		return newError(KindUnknown, "set language", errUnknownPreference(string(lang)))
	}
	return s.put(ctx, "set language", store.KeyLanguage, string(lang))
}

func (s *settingsService) put(ctx context.Context, op, key, value string) error {
	if err := s.store.Put(ctx, key, value); err != nil {
		s.logger.Err(err).Str("op", op).Msg("failed to persist setting")
		return newError(StorageError, op, err)
	}
	return nil
}
