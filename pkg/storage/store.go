package storage

import (
	"context"
	"errors"
	"fmt"

	"swapers-hq/lpmon/pkg/provider"
)

// ErrNotFound is returned when a provider identity has no stored record.
var ErrNotFound = errors.New("provider not found")

var errStoreClosed = errors.New("store is closed")

// Store is the persistence collaborator for provider records.
type Store interface {
	// ListProviders returns every stored record.
	ListProviders(ctx context.Context) ([]provider.Record, error)

	// GetProvider returns the record for id or ErrNotFound.
	GetProvider(ctx context.Context, id string) (provider.Record, error)

	// PutProvider inserts or fully replaces rec.
	PutProvider(ctx context.Context, rec provider.Record) error

	// EnsureProvider inserts rec unless a record with the same identity
	// exists. It reports whether a row was created.
	EnsureProvider(ctx context.Context, rec provider.Record) (bool, error)

	// SetAvailability writes is_available for id.
	SetAvailability(ctx context.Context, id string, available bool) error

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// Seed ensures every record exists in s and returns how many were created.
func Seed(ctx context.Context, s Store, records []provider.Record) (int, error) {
	created := 0
	for _, rec := range records {
		ok, err := s.EnsureProvider(ctx, rec)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}
