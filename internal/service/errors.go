package service

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why a vault operation failed. The set is closed: every
// error returned by the vault services carries exactly one kind.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	PasswordEmpty
	PasswordTooShort
	PasswordMismatch
	WrongPassword
	WrongCurrentPassword
	WrongAnswer
	TitleRequired
	InvalidBackupFormat
	NoVaultFound
	NoRecoverySet
	StorageError
	QuestionOrAnswerEmpty
	InvalidEmail
	VaultLocked
	EmailNotFound
	ServerUnavailable
	RecordNotFound
	VaultExists
)

var kindNames = map[ErrorKind]string{
	KindUnknown:           "Unknown",
	PasswordEmpty:         "PasswordEmpty",
	PasswordTooShort:      "PasswordTooShort",
	PasswordMismatch:      "PasswordMismatch",
	WrongPassword:         "WrongPassword",
	WrongCurrentPassword:  "WrongCurrentPassword",
	WrongAnswer:           "WrongAnswer",
	TitleRequired:         "TitleRequired",
	InvalidBackupFormat:   "InvalidBackupFormat",
	NoVaultFound:          "NoVaultFound",
	NoRecoverySet:         "NoRecoverySet",
	StorageError:          "StorageError",
	QuestionOrAnswerEmpty: "QuestionOrAnswerEmpty",
	InvalidEmail:          "InvalidEmail",
	VaultLocked:           "VaultLocked",
	EmailNotFound:         "EmailNotFound",
	ServerUnavailable:     "ServerUnavailable",
	RecordNotFound:        "RecordNotFound",
	VaultExists:           "VaultExists",
}

var kindMessages = map[ErrorKind]string{
	KindUnknown:           "unknown error",
	PasswordEmpty:         "password is empty",
	PasswordTooShort:      fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
	PasswordMismatch:      "passwords do not match",
	WrongPassword:         "wrong password",
	WrongCurrentPassword:  "current password is wrong",
	WrongAnswer:           "wrong answer",
	TitleRequired:         "title is required",
	InvalidBackupFormat:   "invalid backup file",
	NoVaultFound:          "no vault found",
	NoRecoverySet:         "no security question is set",
	StorageError:          "storage failure",
	QuestionOrAnswerEmpty: "question and answer are required",
	InvalidEmail:          "invalid email address",
	VaultLocked:           "vault is locked",
	EmailNotFound:         "email not found",
	ServerUnavailable:     "recovery server unavailable",
	RecordNotFound:        "record not found",
	VaultExists:           "a vault already exists",
}

// String returns the identifier of k, e.g. "WrongPassword".
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Message returns a short human-readable description of k.
func (k ErrorKind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return kindMessages[KindUnknown]
}

// Category groups error kinds by how a caller is expected to react.
type Category int

const (
	// CategoryValidation errors are fixed by correcting the input.
	CategoryValidation Category = iota
	// CategoryAuth errors are wrong secrets; the caller may retry.
	CategoryAuth
	// CategoryFormat errors are malformed backups or ciphertexts.
	CategoryFormat
	// CategoryStorage errors come from the key/value store.
	CategoryStorage
	// CategoryRemote errors come from the registry server.
	CategoryRemote
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryAuth:
		return "auth"
	case CategoryFormat:
		return "format"
	case CategoryStorage:
		return "storage"
	case CategoryRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Category returns the group k belongs to.
func (k ErrorKind) Category() Category {
	switch k {
	case WrongPassword, WrongCurrentPassword, WrongAnswer:
		return CategoryAuth
	case InvalidBackupFormat:
		return CategoryFormat
	case StorageError, KindUnknown:
		return CategoryStorage
	case EmailNotFound, ServerUnavailable:
		return CategoryRemote
	default:
		return CategoryValidation
	}
}

// VaultError is the error type returned by the vault services.
type VaultError struct {
	Kind ErrorKind
	// Op is the operation that failed, e.g. "unlock".
	Op string
	// Err is the underlying cause, if any.
	Err error
}

func (e *VaultError) Error() string {
	msg := e.Kind.Message()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *VaultError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *VaultError of the same kind, so the
// package sentinels below match any error of their kind.
func (e *VaultError) Is(target error) bool {
	var t *VaultError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, op string, err error) error {
	return &VaultError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *VaultError in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var vErr *VaultError
	if errors.As(err, &vErr) {
		return vErr.Kind
	}
	return KindUnknown
}

// Sentinels for errors.Is.
var (
	ErrPasswordEmpty         = &VaultError{Kind: PasswordEmpty}
	ErrPasswordTooShort      = &VaultError{Kind: PasswordTooShort}
	ErrPasswordMismatch      = &VaultError{Kind: PasswordMismatch}
	ErrWrongPassword         = &VaultError{Kind: WrongPassword}
	ErrWrongCurrentPassword  = &VaultError{Kind: WrongCurrentPassword}
	ErrWrongAnswer           = &VaultError{Kind: WrongAnswer}
	ErrTitleRequired         = &VaultError{Kind: TitleRequired}
	ErrInvalidBackupFormat   = &VaultError{Kind: InvalidBackupFormat}
	ErrNoVaultFound          = &VaultError{Kind: NoVaultFound}
	ErrNoRecoverySet         = &VaultError{Kind: NoRecoverySet}
	ErrStorageError          = &VaultError{Kind: StorageError}
	ErrQuestionOrAnswerEmpty = &VaultError{Kind: QuestionOrAnswerEmpty}
	ErrInvalidEmail          = &VaultError{Kind: InvalidEmail}
	ErrVaultLocked           = &VaultError{Kind: VaultLocked}
	ErrEmailNotFound         = &VaultError{Kind: EmailNotFound}
	ErrServerUnavailable     = &VaultError{Kind: ServerUnavailable}
	ErrRecordNotFound        = &VaultError{Kind: RecordNotFound}
	ErrVaultExists           = &VaultError{Kind: VaultExists}
)

// Registry server errors.
var (
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrServerKeyIsNotSpecified = errors.New("server key is not specified")
	ErrRegistrationNotFound    = errors.New("registration not found")
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrSendingMail             = errors.New("failed to send email")
	ErrRegistrationUnreadable  = errors.New("registration does not decrypt under the server key")
)

var errUnknownPreferenceValue = errors.New("unknown preference value")

func errUnknownPreference(value string) error {
	return fmt.Errorf("%w: %q", errUnknownPreferenceValue, value)
}
