package models

import (
	"fmt"
	"time"
)

// BackupVersion is written into every exported [BackupEnvelope].
const BackupVersion = "1.0"

// BackupTimestampLayout renders timestamps in ISO-8601 with millisecond
// precision in UTC, e.g. 2026-10-15T08:30:00.000Z.
const BackupTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// BackupEnvelope is the portable, self-describing form of a vault.
// Both Verifier and Data are opaque ciphertext strings; Data may be empty.
type BackupEnvelope struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Verifier  string `json:"verifier"`
	Data      string `json:"data"`
}

// BackupFile is an encoded envelope ready to be written to disk.
type BackupFile struct {
	Envelope BackupEnvelope
	FileName string
	Content  []byte
}

// ImportMode selects how imported records are combined with the current set.
type ImportMode string

const (
	// ImportMerge adds imported records whose id is not present yet.
	ImportMerge ImportMode = "merge"
	// ImportReplace discards the current set and adopts the imported one.
	ImportReplace ImportMode = "replace"
)

// ParseImportMode converts user input into an [ImportMode].
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ImportMerge, ImportReplace:
		return ImportMode(s), nil
	default:
		return "", fmt.Errorf("unknown import mode %q", s)
	}
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Mode ImportMode
	// Imported is the number of records found in the backup.
	Imported int
	// Added is the number of records that were actually added or adopted.
	Added int
	// Total is the size of the record set after the import.
	Total int
	// Restored is set when the import also adopted the backup's password.
	Restored bool
}

// BackupFileName returns the suggested file name for a backup taken at t.
func BackupFileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.json", prefix, t.UTC().Format(time.DateOnly))
}
