package store

import (
	"context"

	"github.com/MKhiriev/forkeys/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is the string key/value persistence the vault core writes
// through. Values are opaque strings; all secrets arrive already encrypted.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}

// Entry is one write of an atomic batch. Delete removes Key and ignores
// Value.
type Entry struct {
	Key    string
	Value  string
	Delete bool
}

// Batcher is implemented by stores that can commit several writes at once.
// Apply either persists every entry or none of them.
type Batcher interface {
	Apply(ctx context.Context, entries []Entry) error
}

// RegistryRepository persists recovery registrations on the registry server.
type RegistryRepository interface {
	// Upsert inserts reg or replaces the question and answer of an existing
	// registration with the same e-mail.
	Upsert(ctx context.Context, reg models.Registration) error
	// FindByEmail returns [ErrRegistrationNotFound] when no row matches.
	FindByEmail(ctx context.Context, email string) (models.Registration, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
