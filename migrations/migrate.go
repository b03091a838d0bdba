// Package migrations embeds the goose migrations of the client key/value
// database and of the registry server database.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// Set selects one of the embedded migration directories.
type Set string

const (
	Client Set = "client"
	Server Set = "server"
)

var ErrNilDB = errors.New("migration error: db is nil")

// Migrate applies every pending migration of set using the goose dialect.
func Migrate(db *sql.DB, dialect string, set Set) error {
	if db == nil {
		return ErrNilDB
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, string(set)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
