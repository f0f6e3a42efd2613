package kv

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
)

// Backend exposes one namespace of the kv table as a securekv.Backend.
type Backend struct {
	db        *gorm.DB
	namespace string
}

// NewBackend binds the backend to a namespace.
func NewBackend(db *gorm.DB, namespace string) *Backend {
	return &Backend{db: db, namespace: namespace}
}

// Get implements securekv.Backend.
func (b *Backend) Get(name string) ([]byte, error) {
	entry, err := Get(b.db, b.namespace, name)
	if errors.Is(err, ErrEntryNotFound) {
		return nil, securekv.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return entry.Value, nil
}

// Set implements securekv.Backend.
func (b *Backend) Set(name string, value []byte) error {
	_, err := Set(b.db, b.namespace, name, value)

	return err
}

// Delete implements securekv.Backend.
func (b *Backend) Delete(name string) error {
	err := Delete(b.db, b.namespace, name)
	if errors.Is(err, ErrEntryNotFound) {
		return nil
	}

	return err
}
