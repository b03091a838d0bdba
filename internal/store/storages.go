package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/migrations"
)

const boltScheme = "bolt://"

// NewClientStore opens the [KeyValueStore] named by cfg.DSN:
//   - "memory" or ":memory:" selects the process-local store;
//   - "bolt://<path>" selects a bbolt file;
//   - anything else is a SQLite file path, migrated on open.
func NewClientStore(ctx context.Context, cfg config.DB, log *logger.Logger) (KeyValueStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)
	case dsn == "memory" || dsn == ":memory:":
		log.Debug().Str("func", "NewClientStore").Msg("using in-memory store")
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, boltScheme):
		return NewBoltStore(strings.TrimPrefix(dsn, boltScheme), log)
	}

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite connection error: %w", ErrStorage, err)
	}
	if err = db.Migrate(migrations.Client); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migration failed: %w", ErrStorage, err)
	}

	return NewSQLStore(db, log), nil
}

// ServerStorages groups the repositories of the registry server.
type ServerStorages struct {
	RegistryRepository RegistryRepository

	closer io.Closer
}

// NewServerStorages connects to the registry database named by cfg.DSN
// (postgres:// or postgresql:// selects pgx, anything else is a SQLite
// path), applies the server migrations and wires the repositories.
func NewServerStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*ServerStorages, error) {
	log.Info().Msg("creating new storages...")

	var (
		db  *DB
		err error
	)
	if isPostgresDSN(cfg.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DSN, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DSN, log)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(migrations.Server); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ServerStorages{
		RegistryRepository: NewRegistryRepository(db, log),
		closer:             db,
	}, nil
}

// Close releases the database connection.
func (s *ServerStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
