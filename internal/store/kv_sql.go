package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/forkeys/internal/logger"
)

var _ Batcher = (*sqlStore)(nil)

type sqlStore struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLStore returns a [KeyValueStore] over the kv_store table of db.
// The client migration set must have been applied.
func NewSQLStore(db *DB, log *logger.Logger) KeyValueStore {
	return &sqlStore{
		DB:     db,
		logger: log,
		now:    time.Now,
	}
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.buildGetValueQuery(key)
	if err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Get").Msg("failed to build query")
		return "", false, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Get").Str("key", key).Msg("failed to read key")
		return "", false, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (s *sqlStore) Put(ctx context.Context, key, value string) error {
	query, args, err := s.buildPutValueQuery(key, value, s.now().UTC().UnixMilli())
	if err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Put").Msg("failed to build query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Put").Str("key", key).Msg("failed to write key")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.buildDeleteValueQuery(key)
	if err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Delete").Msg("failed to build query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Delete").Str("key", key).Msg("failed to delete key")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}

	return nil
}

// Apply runs every entry inside one transaction. Nothing is persisted unless
// the commit succeeds.
func (s *sqlStore) Apply(ctx context.Context, entries []Entry) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Apply").Int("entries", len(entries)).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	updatedAt := s.now().UTC().UnixMilli()
	for _, e := range entries {
		var (
			query string
			args  []any
		)
		if e.Delete {
			query, args, err = s.buildDeleteValueQuery(e.Key)
		} else {
			query, args, err = s.buildPutValueQuery(e.Key, e.Value, updatedAt)
		}
		if err != nil {
			s.logger.Err(err).Str("func", "sqlStore.Apply").Msg("failed to build query")
			return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).Str("func", "sqlStore.Apply").Str("key", e.Key).Msg("failed to write key in transaction")
			return fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", "sqlStore.Apply").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqlStore) Close() error {
	return s.DB.Close()
}
