package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/models"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 100 * time.Millisecond
)

type registryRepository struct {
	*DB
	logger     *logger.Logger
	maxRetries uint64
	retryDelay time.Duration
}

// RegistryOption customises a registry repository.
type RegistryOption func(*registryRepository)

// WithRetry sets how many times a transient failure is retried and the base
// of the exponential backoff between attempts.
func WithRetry(maxRetries uint64, baseDelay time.Duration) RegistryOption {
	return func(r *registryRepository) {
		r.maxRetries = maxRetries
		r.retryDelay = baseDelay
	}
}

// NewRegistryRepository returns a [RegistryRepository] over the
// registrations table of db. The server migration set must have been applied.
func NewRegistryRepository(db *DB, log *logger.Logger, opts ...RegistryOption) RegistryRepository {
	r := &registryRepository{
		DB:         db,
		logger:     log,
		maxRetries: defaultRetryAttempts,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *registryRepository) Upsert(ctx context.Context, reg models.Registration) error {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpsertRegistrationQuery(reg)
	if err != nil {
		log.Err(err).Str("func", "registryRepository.Upsert").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.DB.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "registryRepository.Upsert").Msg("failed to upsert registration")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *registryRepository) FindByEmail(ctx context.Context, email string) (models.Registration, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildFindRegistrationQuery(email)
	if err != nil {
		log.Err(err).Str("func", "registryRepository.FindByEmail").Msg("failed to build query")
		return models.Registration{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var reg models.Registration
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(
			&reg.Email,
			&reg.Question,
			&reg.Answer,
			&reg.CreatedAt,
			&reg.UpdatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, ErrRegistrationNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "registryRepository.FindByEmail").Msg("failed to query registration")
		return models.Registration{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return reg, nil
}

// withRetry runs fn, repeating it with exponential backoff while the
// dialect's classifier reports the failure as transient.
func (r *registryRepository) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.retryDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && r.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
