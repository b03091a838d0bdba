// Package service implements the vault core of forkeys and the registry
// server's business logic.
//
// Client side:
//   - [VaultService] is the state machine over NoVault, Locked and Unlocked.
//     It owns the master password and the decrypted record set.
//   - [RecoveryService] manages the security-question artifact and the
//     e-mail recovery tier.
//   - [BackupService] exports and imports portable encrypted backups.
//   - [SettingsService] stores backup, theme and language preferences.
//
// Server side:
//   - [RegistryService] stores recovery registrations and mails them back.
//   - [AppInfoService] reports the server version.
//
// Every client-side error is a *[VaultError] carrying an [ErrorKind].
package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/forkeys/models"
)

// VaultState is the lifecycle state of a vault.
type VaultState int

const (
	// StateNoVault means no verifier is persisted.
	StateNoVault VaultState = iota
	// StateLocked means a vault exists but nothing is decrypted in memory.
	StateLocked
	// StateUnlocked means the master password and records are in memory.
	StateUnlocked
)

func (s VaultState) String() string {
	switch s {
	case StateNoVault:
		return "no vault"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// VaultSession is the part of the vault state machine that the recovery and
// backup services build on.
type VaultSession interface {
	// State returns the current lifecycle state.
	State() VaultState

	// RecordCount returns the size of the in-memory record set, 0 unless
	// Unlocked.
	RecordCount() int

	// WithMasterPassword calls fn with the in-memory master password.
	// fn must not retain the slice. Fails VaultLocked unless Unlocked.
	WithMasterPassword(fn func(password []byte) error) error

	// Unlock verifies password against the persisted verifier and decrypts
	// the record set. Absent, empty or undecryptable data yields an empty
	// set.
	Unlock(ctx context.Context, password string) error

	// MergeRecords adds every record whose id is not present yet and commits.
	// Existing records are never overwritten. Returns the number added.
	MergeRecords(ctx context.Context, records []models.VaultRecord) (int, error)

	// ReplaceRecords discards the current record set, adopts records and
	// commits.
	ReplaceRecords(ctx context.Context, records []models.VaultRecord) error

	// Restore adopts verifier and password as the vault's credentials and
	// records as its content, persists them and transitions to Unlocked.
	// Any in-memory session is discarded first.
	Restore(ctx context.Context, verifier, password string, records []models.VaultRecord) error
}

// VaultService is the vault state machine.
type VaultService interface {
	VaultSession

	// Initialize creates a new vault protected by password and leaves it
	// Unlocked with an empty record set. Fails PasswordEmpty,
	// PasswordTooShort or PasswordMismatch.
	Initialize(ctx context.Context, password, confirm string) error

	// Lock discards the master password and records. It is a no-op unless
	// Unlocked.
	Lock()

	// SaveRecord upserts record by id and commits before returning. An empty
	// id is assigned from the clock, an empty category becomes "other".
	SaveRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)

	// DeleteRecord removes the record with id, if present, and commits.
	DeleteRecord(ctx context.Context, id string) error

	// DeleteAllData clears the record set and commits an empty vault.
	DeleteAllData(ctx context.Context) error

	// ChangePassword replaces the master password, re-encrypting the records
	// and re-wrapping the recovery artifact.
	ChangePassword(ctx context.Context, current, newPassword, confirm string) error

	// Records returns a filtered, sorted copy of the record set.
	Records(filter models.RecordFilter) ([]models.VaultRecord, error)

	// Record returns the record with id. Fails RecordNotFound.
	Record(id string) (models.VaultRecord, error)

	// CreatedAt returns the vault creation time, or the zero time when
	// unknown.
	CreatedAt(ctx context.Context) (time.Time, error)
}

// RecoveryService manages both password recovery tiers.
type RecoveryService interface {
	// SaveSecurityQuestion wraps the master password under the normalized
	// answer and persists it together with question. Requires Unlocked.
	SaveSecurityQuestion(ctx context.Context, question, answer string) error

	// RecoverPassword unwraps the master password with answer. Fails
	// NoRecoverySet or WrongAnswer.
	RecoverPassword(ctx context.Context, answer string) (string, error)

	// Question returns the stored security question. Fails NoRecoverySet.
	Question(ctx context.Context) (string, error)

	// CompleteMandatorySetup saves the security question and e-mail locally,
	// marks the setup as done and registers them with the server. A server
	// failure is reported in the result and never undoes the local save.
	CompleteMandatorySetup(ctx context.Context, question, answer, email string) (models.SetupResult, error)

	// RequestRecoveryEmail asks the server to mail the registered question
	// and answer. Fails InvalidEmail, EmailNotFound or ServerUnavailable.
	RequestRecoveryEmail(ctx context.Context, email string) error

	// MandatorySetupDone reports whether the mandatory setup was completed.
	MandatorySetupDone(ctx context.Context) (bool, error)

	// Email returns the registered recovery e-mail, if any.
	Email(ctx context.Context) (string, bool, error)
}

// BackupService produces and consumes [models.BackupEnvelope] files.
type BackupService interface {
	// Export builds an envelope from the persisted vault. It does not require
	// Unlocked. Fails NoVaultFound.
	Export(ctx context.Context, now time.Time) (models.BackupFile, error)

	// ExportToFile writes an export into dir and records the backup time.
	// Returns the written path.
	ExportToFile(ctx context.Context, dir string, now time.Time) (string, error)

	// AutoBackup is ExportToFile with the automatic backup file name.
	AutoBackup(ctx context.Context, dir string, now time.Time) (string, error)

	// ParseEnvelope decodes and validates a backup file. Fails
	// InvalidBackupFormat.
	ParseEnvelope(data []byte) (models.BackupEnvelope, error)

	// Import restores records from r under password using mode.
	Import(ctx context.Context, r io.Reader, password string, mode models.ImportMode) (models.ImportResult, error)

	// ImportFile is Import reading from path.
	ImportFile(ctx context.Context, path, password string, mode models.ImportMode) (models.ImportResult, error)
}

// SettingsService stores the user's preferences.
type SettingsService interface {
	BackupFrequency(ctx context.Context) (models.BackupFrequency, error)
	SetBackupFrequency(ctx context.Context, freq models.BackupFrequency) error

	// LastBackup returns the zero time when no backup was recorded.
	LastBackup(ctx context.Context) (time.Time, error)
	SetLastBackup(ctx context.Context, at time.Time) error

	// IsBackupDue reports whether a backup reminder should be shown at now.
	IsBackupDue(ctx context.Context, now time.Time) (bool, error)

	Theme(ctx context.Context) (models.Theme, error)
	SetTheme(ctx context.Context, theme models.Theme) error

	Language(ctx context.Context) (models.Language, error)
	SetLanguage(ctx context.Context, lang models.Language) error
}

// RegistryService is the registry server's business logic.
type RegistryService interface {
	// Register stores the registration, encrypted at rest, and sends a
	// confirmation mail. A mail failure is logged and not returned.
	Register(ctx context.Context, req models.RegisterRequest) error

	// SendRecoveryEmail mails the registered question and answer to the
	// given address. Returns [ErrRegistrationNotFound] for unknown e-mails
	// and [ErrSendingMail] when the mail could not be sent.
	SendRecoveryEmail(ctx context.Context, req models.RecoveryEmailRequest) error

	// SendTestEmail checks the mail relay by sending a fixed message.
	SendTestEmail(ctx context.Context, req models.RecoveryEmailRequest) error
}

// RegistryServiceWrapper defines middleware composition for RegistryService.
// Implementations wrap an existing RegistryService to add behavior such as
// validation.
type RegistryServiceWrapper interface {
	Wrap(RegistryService) RegistryService
}

// AppInfoService reports build and runtime information of the server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Status(ctx context.Context) models.ServerStatus
	FrontendConfig(ctx context.Context) models.FrontendConfig
}
