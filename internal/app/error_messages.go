// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of the forkeys CLI.
//
// Msg* constants are printed after successful commands. Hint returns the
// follow-up advice printed below an error, keyed by the vault error kind.
// Keeping them in one place keeps the wording consistent across commands.
package app

import "github.com/MKhiriev/forkeys/internal/service"

const (
	// MsgVaultCreated is printed after `forkeys init`.
	MsgVaultCreated = "Vault created"

	// MsgRecordSaved is printed after a record was added or updated.
	MsgRecordSaved = "Record saved"

	// MsgRecordDeleted is printed after `forkeys rm`.
	MsgRecordDeleted = "Record deleted"

	// MsgAllDataDeleted is printed after `forkeys wipe`.
	MsgAllDataDeleted = "All records deleted"

	// MsgNoRecords is printed when a listing is empty.
	MsgNoRecords = "No records"

	// MsgCopied is printed when a secret was placed on the clipboard.
	MsgCopied = "Password copied to clipboard"

	// MsgPasswordChanged is printed after `forkeys passwd`.
	MsgPasswordChanged = "Master password changed"

	// MsgQuestionSaved is printed after the security question was stored.
	MsgQuestionSaved = "Security question saved"

	// MsgSetupSynced is printed when the mandatory setup reached the
	// registry server.
	MsgSetupSynced = "Recovery data saved and registered with the server"

	// MsgSetupLocalOnly is printed when the registry server could not be
	// reached during the mandatory setup. The local part is kept.
	MsgSetupLocalOnly = "Recovery data saved locally; the server could not be reached"

	// MsgRecoveryEmailSent is printed after `forkeys recover-email`.
	MsgRecoveryEmailSent = "Recovery email sent"

	// MsgBackupNotDue is printed by `forkeys autobackup` when nothing is due.
	MsgBackupNotDue = "Backup is not due"

	// MsgBackupDue is shown as a reminder by `forkeys status`.
	MsgBackupDue = "A backup is due, run 'forkeys export'"

	// MsgWipeAborted is printed when the wipe confirmation was declined.
	MsgWipeAborted = "Aborted"
)

var hints = map[service.ErrorKind]string{
	service.NoVaultFound:         "Run 'forkeys init' first",
	service.VaultExists:          "Use 'forkeys status' to see the current vault",
	service.WrongPassword:        "Forgot it? Try 'forkeys recover' or 'forkeys recover-email'",
	service.WrongCurrentPassword: "The current master password is required to change it",
	service.NoRecoverySet:        "Set one with 'forkeys question' while the vault is unlocked",
	service.InvalidBackupFormat:  "The file is not a forkeys backup",
	service.EmailNotFound:        "Complete 'forkeys setup' with this address first",
	service.ServerUnavailable:    "Check the registry server address and try again later",
	service.StorageError:         "See the log file for details",
}

// Hint returns the advice shown below an error of kind, or "" when there is
// nothing to add to the error message itself.
func Hint(kind service.ErrorKind) string {
	return hints[kind]
}
