package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/mailer"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/models"
)

// sealedPrefix marks registry values encrypted under the server key. Values
// without it are plain text rows written before encryption at rest.
const sealedPrefix = "enc:v1:"

type registryService struct {
	repository store.RegistryRepository
	engine     crypto.CipherEngine
	serverKey  string
	mailer     mailer.Mailer
	now        func() time.Time

	logger *logger.Logger
}

// NewRegistryService returns the registry server logic. Questions and
// answers are encrypted at rest under cfg.ServerKey.
func NewRegistryService(repository store.RegistryRepository, engine crypto.CipherEngine, cfg config.ServerApp, m mailer.Mailer, logger *logger.Logger) (RegistryService, error) {
	if cfg.ServerKey == "" {
		return nil, ErrServerKeyIsNotSpecified
	}

	return &registryService{
		repository: repository,
		engine:     engine,
		serverKey:  cfg.ServerKey,
		mailer:     m,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (s *registryService) Register(ctx context.Context, req models.RegisterRequest) error {
	log := logger.FromContext(ctx)

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return ErrInvalidDataProvided
	}

	question, err := s.conceal(req.Question)
	if err != nil {
		return fmt.Errorf("error encrypting question: %w", err)
	}
	answer, err := s.conceal(req.Answer)
	if err != nil {
		return fmt.Errorf("error encrypting answer: %w", err)
	}

	now := s.now().UTC()
	reg := models.Registration{
		Email:     email,
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.repository.Upsert(ctx, reg); err != nil {
		log.Err(err).Str("email", email).Msg("registration upsert failed")
		return fmt.Errorf("error saving registration: %w", err)
	}
	log.Info().Str("email", email).Msg("registration saved")

	msg, err := mailer.RegistrationMessage(email)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("registration confirmation mail failed")
	}

	return nil
}

func (s *registryService) SendRecoveryEmail(ctx context.Context, req models.RecoveryEmailRequest) error {
	log := logger.FromContext(ctx)

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return ErrInvalidDataProvided
	}

	reg, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRegistrationNotFound) {
			log.Info().Str("email", email).Msg("recovery requested for unknown email")
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("error finding registration: %w", err)
	}

	question, err := s.reveal(reg.Question)
	if err != nil {
		log.Err(err).Str("email", email).Msg("stored question does not decrypt")
		return err
	}
	answer, err := s.reveal(reg.Answer)
	if err != nil {
		log.Err(err).Str("email", email).Msg("stored answer does not decrypt")
		return err
	}

	msg, err := mailer.RecoveryMessage(email, question, answer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}
	if err = s.mailer.Send(ctx, msg); err != nil {
		log.Err(err).Str("email", email).Msg("recovery mail failed")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	log.Info().Str("email", email).Msg("recovery mail sent")
	return nil
}

func (s *registryService) SendTestEmail(ctx context.Context, req models.RecoveryEmailRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return ErrInvalidDataProvided
	}
	if err := s.mailer.Send(ctx, mailer.TestMessage(email)); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}
	return nil
}

// conceal encrypts v under the server key and tags it with sealedPrefix.
// Empty values stay empty.
func (s *registryService) conceal(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	sealed, err := s.engine.Encrypt([]byte(v), s.serverKey)
	if err != nil {
		return "", err
	}
	return sealedPrefix + sealed, nil
}

// reveal returns the plain text of a stored value. Untagged values are
// legacy plain text. A tagged value that does not decrypt, for example after
// the server key was rotated, is an error and never leaks as plain text.
func (s *registryService) reveal(v string) (string, error) {
	sealed, ok := strings.CutPrefix(v, sealedPrefix)
	if !ok {
		return v, nil
	}
	plain, err := s.engine.Decrypt(sealed, s.serverKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRegistrationUnreadable, err)
	}
	defer crypto.ClearBytes(plain)
	return string(plain), nil
}
