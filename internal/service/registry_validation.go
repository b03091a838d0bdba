package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/forkeys/internal/validators"
	"github.com/MKhiriev/forkeys/models"
)

// RegistryValidationService checks request shape before the wrapped
// RegistryService sees it. Only the e-mail is mandatory; question and
// answer may be empty.
type RegistryValidationService struct {
	inner     RegistryService
	validator validators.Validator
}

func NewRegistryValidationService() RegistryServiceWrapper {
	return &RegistryValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *RegistryValidationService) Wrap(inner RegistryService) RegistryService {
	return &RegistryValidationService{inner: inner, validator: v.validator}
}

func (v *RegistryValidationService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := v.validator.Validate(ctx, req, validators.FieldEmail); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Register(ctx, req)
}

func (v *RegistryValidationService) SendRecoveryEmail(ctx context.Context, req models.RecoveryEmailRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.SendRecoveryEmail(ctx, req)
}

func (v *RegistryValidationService) SendTestEmail(ctx context.Context, req models.RecoveryEmailRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.SendTestEmail(ctx, req)
}
