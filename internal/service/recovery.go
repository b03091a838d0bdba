package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/MKhiriev/forkeys/internal/adapter"
	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/internal/validators"
	"github.com/MKhiriev/forkeys/models"
)

const mandatoryDoneValue = "true"

type recoveryService struct {
	vault     VaultSession
	store     store.KeyValueStore
	engine    crypto.CipherEngine
	adapter   adapter.RecoveryAdapter
	validator validators.Validator

	logger *logger.Logger
}

// NewRecoveryService constructs a RecoveryService. recoveryAdapter may be
// nil when no registry server is configured; the e-mail tier then reports
// ServerUnavailable.
func NewRecoveryService(vault VaultSession, kv store.KeyValueStore, engine crypto.CipherEngine, recoveryAdapter adapter.RecoveryAdapter, logger *logger.Logger) RecoveryService {
	return &recoveryService{
		vault:     vault,
		store:     kv,
		engine:    engine,
		adapter:   recoveryAdapter,
		validator: validators.NewVaultValidator(),
		logger:    logger,
	}
}

// NormalizeAnswer upper-cases answer and strips every whitespace character,
// so "  rex " and "R E X" both become "REX".
func NormalizeAnswer(answer string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(answer))
}

func (s *recoveryService) SaveSecurityQuestion(ctx context.Context, question, answer string) error {
	const op = "save security question"

	if s.vault.State() != StateUnlocked {
		return newError(VaultLocked, op, nil)
	}

	question = strings.TrimSpace(question)
	normalized := NormalizeAnswer(answer)
	if question == "" || normalized == "" {
		return newError(QuestionOrAnswerEmpty, op, nil)
	}

	return s.vault.WithMasterPassword(func(password []byte) error {
		artifact, err := sealRecovery(s.engine, string(password), question, normalized)
		if err != nil {
			return newError(KindUnknown, op, err)
		}

		if err = writeBatch(ctx, s.store, s.logger, artifactEntries(artifact)); err != nil {
			s.logger.Err(err).Str("op", op).Msg("failed to persist recovery artifact")
			return newError(StorageError, op, err)
		}

		s.logger.Info().Str("op", op).Msg("security question saved")
		return nil
	})
}

func (s *recoveryService) RecoverPassword(ctx context.Context, answer string) (string, error) {
	const op = "recover password"

	wrapped, ok, err := s.store.Get(ctx, store.KeyRecovery)
	if err != nil {
		return "", newError(StorageError, op, err)
	}
	if !ok || wrapped == "" {
		return "", newError(NoRecoverySet, op, nil)
	}

	normalized := NormalizeAnswer(answer)
	if normalized == "" {
		return "", newError(WrongAnswer, op, nil)
	}

	plain, err := s.engine.Decrypt(wrapped, normalized)
	if err != nil || len(plain) == 0 {
		// malformed artifacts and wrong answers look the same to callers
		s.logger.Warn().Str("op", op).Msg("security answer rejected")
		return "", newError(WrongAnswer, op, nil)
	}
	defer crypto.ClearBytes(plain)

	return string(plain), nil
}

func (s *recoveryService) Question(ctx context.Context) (string, error) {
	const op = "security question"

	question, ok, err := s.store.Get(ctx, store.KeyQuestion)
	if err != nil {
		return "", newError(StorageError, op, err)
	}
	if !ok || question == "" {
		return "", newError(NoRecoverySet, op, nil)
	}
	return question, nil
}

func (s *recoveryService) CompleteMandatorySetup(ctx context.Context, question, answer, email string) (models.SetupResult, error) {
	const op = "mandatory setup"

	if strings.TrimSpace(question) == "" || NormalizeAnswer(answer) == "" {
		return models.SetupResult{}, newError(QuestionOrAnswerEmpty, op, nil)
	}
	email = strings.TrimSpace(email)
	if err := s.validator.Validate(ctx, models.RecoveryEmailRequest{Email: email}); err != nil {
		return models.SetupResult{}, newError(InvalidEmail, op, err)
	}

	if err := s.SaveSecurityQuestion(ctx, question, answer); err != nil {
		return models.SetupResult{}, err
	}
	entries := []kvEntry{
		{key: store.KeyEmail, value: email},
		{key: store.KeyMandatoryDone, value: mandatoryDoneValue},
	}
	if err := writeBatch(ctx, s.store, s.logger, entries); err != nil {
		return models.SetupResult{}, newError(StorageError, op, err)
	}

	// the local part is done; a server failure is only reported
	if s.adapter == nil {
		return models.SetupResult{SyncErr: newError(ServerUnavailable, op, nil)}, nil
	}
	req := models.RegisterRequest{
		Email:    email,
		Question: strings.TrimSpace(question),
		Answer:   answer,
	}
	if err := s.adapter.Register(ctx, req); err != nil {
		s.logger.Warn().Err(err).Str("op", op).Msg("registration sync failed, local setup kept")
		return models.SetupResult{SyncErr: newError(ServerUnavailable, op, err)}, nil
	}

	s.logger.Info().Str("op", op).Msg("mandatory setup completed and synced")
	return models.SetupResult{Synced: true}, nil
}

func (s *recoveryService) RequestRecoveryEmail(ctx context.Context, email string) error {
	const op = "request recovery email"

	email = strings.TrimSpace(email)
	if err := s.validator.Validate(ctx, models.RecoveryEmailRequest{Email: email}); err != nil {
		return newError(InvalidEmail, op, err)
	}
	if s.adapter == nil {
		return newError(ServerUnavailable, op, nil)
	}

	err := s.adapter.RequestRecoveryEmail(ctx, models.RecoveryEmailRequest{Email: email})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrNotFound):
		return newError(EmailNotFound, op, err)
	default:
		s.logger.Err(err).Str("op", op).Msg("recovery email request failed")
		return newError(ServerUnavailable, op, err)
	}
}

func (s *recoveryService) MandatorySetupDone(ctx context.Context) (bool, error) {
	done, ok, err := s.store.Get(ctx, store.KeyMandatoryDone)
	if err != nil {
		return false, newError(StorageError, "mandatory setup done", err)
	}
	return ok && done == mandatoryDoneValue, nil
}

func (s *recoveryService) Email(ctx context.Context) (string, bool, error) {
	email, ok, err := s.store.Get(ctx, store.KeyEmail)
	if err != nil {
		return "", false, newError(StorageError, "recovery email", err)
	}
	return email, ok && email != "", nil
}

// sealRecovery wraps password under the normalized answer and seals the
// answer under password, so the artifact can be re-wrapped on a password
// change.
func sealRecovery(engine crypto.CipherEngine, password, question, normalizedAnswer string) (models.RecoveryArtifact, error) {
	wrapped, err := engine.Encrypt([]byte(password), normalizedAnswer)
	if err != nil {
		return models.RecoveryArtifact{}, err
	}
	sealed, err := engine.Encrypt([]byte(normalizedAnswer), password)
	if err != nil {
		return models.RecoveryArtifact{}, err
	}

	return models.RecoveryArtifact{
		Question:        question,
		WrappedPassword: wrapped,
		SealedAnswer:    sealed,
	}, nil
}

func artifactEntries(a models.RecoveryArtifact) []kvEntry {
	return []kvEntry{
		{key: store.KeyQuestion, value: a.Question},
		{key: store.KeyRecovery, value: a.WrappedPassword},
		{key: store.KeyRecoveryAnswer, value: a.SealedAnswer},
	}
}

// recoveryRemoval drops the local recovery artifact and asks for the
// mandatory setup again.
func recoveryRemoval() []kvEntry {
	return []kvEntry{
		{key: store.KeyRecovery, del: true},
		{key: store.KeyRecoveryAnswer, del: true},
		{key: store.KeyQuestion, del: true},
		{key: store.KeyMandatoryDone, del: true},
	}
}

// rewrapRecovery returns the writes that move the recovery artifact from
// oldPassword to newPassword. Artifacts without a sealed answer cannot be
// re-wrapped and are removed instead.
func (v *vaultService) rewrapRecovery(ctx context.Context, oldPassword, newPassword string) ([]kvEntry, error) {
	wrapped, ok, err := v.store.Get(ctx, store.KeyRecovery)
	if err != nil {
		return nil, err
	}
	if !ok || wrapped == "" {
		return nil, nil
	}

	question, _, err := v.store.Get(ctx, store.KeyQuestion)
	if err != nil {
		return nil, err
	}
	sealed, ok, err := v.store.Get(ctx, store.KeyRecoveryAnswer)
	if err != nil {
		return nil, err
	}
	if !ok || sealed == "" {
		v.logger.Warn().Msg("recovery artifact has no sealed answer, removing it")
		return recoveryRemoval(), nil
	}

	answer, err := v.engine.Decrypt(sealed, oldPassword)
	if err != nil {
		v.logger.Warn().Err(err).Msg("sealed recovery answer is not decryptable, removing the artifact")
		return recoveryRemoval(), nil
	}
	defer crypto.ClearBytes(answer)

	artifact, err := sealRecovery(v.engine, newPassword, question, string(answer))
	if err != nil {
		return nil, err
	}
	return artifactEntries(artifact), nil
}
