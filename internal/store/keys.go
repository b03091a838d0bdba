package store

// Storage keys of the client vault. The values are part of the on-disk
// format and must never change.
const (
	KeyData           = "vault_data_v3"
	KeyVerifier       = "vault_verifier_v3"
	KeyRecovery       = "vault_recovery_v3"
	KeyRecoveryAnswer = "vault_recovery_answer_v3"
	KeyQuestion       = "vault_question_v3"
	KeyEmail          = "vault_email_v3"
	KeyCreatedAt      = "vault_created_at"
	KeyTheme          = "vault_theme"
	KeyLanguage       = "vault_lang"
	KeyBackupFreq     = "vault_backup_freq"
	KeyLastBackup     = "vault_last_backup"
	KeyMandatoryDone  = "vault_mandatory_done"
)

// VaultKeys lists every key owned by a vault. Wiping a vault deletes all of
// them.
var VaultKeys = []string{
	KeyData,
	KeyVerifier,
	KeyRecovery,
	KeyRecoveryAnswer,
	KeyQuestion,
	KeyEmail,
	KeyCreatedAt,
	KeyTheme,
	KeyLanguage,
	KeyBackupFreq,
	KeyLastBackup,
	KeyMandatoryDone,
}
