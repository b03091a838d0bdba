package store

import "errors"

// Sentinel errors returned by stores and repositories. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStorage wraps every backend failure of a [KeyValueStore]. The vault
	// core maps it to its StorageError kind.
	ErrStorage = errors.New("storage failure")

	// ErrRegistrationNotFound is returned when no registration matches the
	// requested e-mail.
	ErrRegistrationNotFound = errors.New("registration was not found")

	// ErrStoreClosed is returned by the in-memory store after Close.
	ErrStoreClosed = errors.New("store is closed")

	// ErrUnsupportedDSN is returned when a DSN names no known backend.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrBeginningTransaction is returned when a transaction cannot be opened.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
