package models

import (
	"fmt"
	"time"
)

// BackupFrequency controls how often a backup reminder becomes due.
type BackupFrequency string

const (
	BackupDaily   BackupFrequency = "daily"
	BackupWeekly  BackupFrequency = "weekly"
	BackupMonthly BackupFrequency = "monthly"
	BackupManual  BackupFrequency = "manual"
)

// DefaultBackupFrequency is stored when a vault is created.
const DefaultBackupFrequency = BackupWeekly

// Interval returns the reminder period. Manual has no period and returns 0.
func (f BackupFrequency) Interval() time.Duration {
	switch f {
	case BackupDaily:
		return 24 * time.Hour
	case BackupWeekly:
		return 7 * 24 * time.Hour
	case BackupMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// ParseBackupFrequency converts user input into a [BackupFrequency].
func ParseBackupFrequency(s string) (BackupFrequency, error) {
	switch f := BackupFrequency(s); f {
	case BackupDaily, BackupWeekly, BackupMonthly, BackupManual:
		return f, nil
	default:
		return "", fmt.Errorf("unknown backup frequency %q", s)
	}
}

// Theme is the stored UI theme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Language is the stored UI language preference.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)
