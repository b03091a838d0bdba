package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/forkeys/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldEmail    = "email"
	FieldQuestion = "question"
	FieldAnswer   = "answer"
	FieldVersion  = "version"
	FieldVerifier = "verifier"
	FieldRecords  = "records"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an e-mail address: something, an @,
// something, a dot, something, with no whitespace.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

type VaultValidator struct {
}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(ctx, *value, fields...)

	case []models.VaultRecord:
		return v.validateRecords(ctx, value)

	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.RecoveryEmailRequest:
		return v.validateEmail(value.Email)
	case *models.RecoveryEmailRequest:
		return v.validateEmail(value.Email)

	case models.BackupEnvelope:
		return v.validateEnvelope(ctx, value, fields...)
	case *models.BackupEnvelope:
		return v.validateEnvelope(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateRecord(_ context.Context, record models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTitle, FieldCategory}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(record.ID) == "" {
				return ErrInvalidRecordID
			}
		case FieldTitle:
			if strings.TrimSpace(record.Title) == "" {
				return ErrTitleRequired
			}
		case FieldCategory:
			// empty falls back to "other" in the vault core
			if record.Category != "" && !record.Category.IsValid() {
				return ErrInvalidCategory
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecords checks an imported or decrypted record set. Only ids are
// required to be present and unique; titles of legacy records are not
// enforced.
func (v *VaultValidator) validateRecords(ctx context.Context, records []models.VaultRecord) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if err := v.validateRecord(ctx, r, FieldID); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRecords, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	return nil
}

func (v *VaultValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldQuestion, FieldAnswer}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := v.validateEmail(req.Email); err != nil {
				return err
			}
		case FieldQuestion:
			if strings.TrimSpace(req.Question) == "" {
				return ErrEmptyQuestion
			}
		case FieldAnswer:
			if strings.TrimSpace(req.Answer) == "" {
				return ErrEmptyAnswer
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateEmail(email string) error {
	if !IsEmail(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func (v *VaultValidator) validateEnvelope(_ context.Context, env models.BackupEnvelope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVersion, FieldVerifier}
	}

	for _, f := range fields {
		switch f {
		case FieldVersion:
			if env.Version == "" {
				return ErrInvalidVersion
			}
		case FieldVerifier:
			if env.Verifier == "" {
				return ErrEmptyVerifier
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
