package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidRecordID  = errors.New("invalid record id")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyQuestion    = errors.New("security question is required")
	ErrEmptyAnswer      = errors.New("security answer is required")
	ErrInvalidVersion   = errors.New("missing or unsupported backup version")
	ErrEmptyVerifier    = errors.New("backup verifier is required")
	ErrDuplicateRecords = errors.New("duplicate record ids")
)
