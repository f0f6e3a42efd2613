// Package kv provides the raw byte key-value operations of one namespace on gorm.
package kv

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoSecureSettings/GoSecureSettings/internal/db/models"
)

const (
	entryQueryPattern     = "namespace = ? AND name = ?"
	namespaceQueryPattern = "namespace = ?"
)

var (
	// ErrEntryNotFound is returned when a name has no entry in the namespace.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNameEmpty is returned when an entry is addressed with an empty name.
	ErrNameEmpty = errors.New("entry name cannot be empty")
	// ErrNamespaceEmpty is returned when the namespace is empty.
	ErrNamespaceEmpty = errors.New("namespace cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func check(db *gorm.DB, namespace, name string) error {
	switch {
	case db == nil:
		return ErrDBNil
	case namespace == "":
		return ErrNamespaceEmpty
	case name == "":
		return ErrNameEmpty
	}

	return nil
}

// Get retrieves an entry by namespace and name.
func Get(db *gorm.DB, namespace, name string) (*models.KVEntry, error) {
	if err := check(db, namespace, name); err != nil {
		return nil, err
	}

	var entry models.KVEntry

	result := db.Where(entryQueryPattern, namespace, name).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}

		return nil, result.Error
	}

	return &entry, nil
}

// Set creates or replaces an entry (upsert on namespace and name).
func Set(db *gorm.DB, namespace, name string, value []byte) (*models.KVEntry, error) {
	if err := check(db, namespace, name); err != nil {
		return nil, err
	}

	entry := &models.KVEntry{
		Namespace: namespace,
		Name:      name,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}

// Delete removes an entry. Deleting a missing entry returns ErrEntryNotFound.
func Delete(db *gorm.DB, namespace, name string) error {
	if err := check(db, namespace, name); err != nil {
		return err
	}

	result := db.Where(entryQueryPattern, namespace, name).Delete(&models.KVEntry{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Count returns the number of entries in a namespace.
func Count(db *gorm.DB, namespace string) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64

	result := db.Model(&models.KVEntry{}).Where(namespaceQueryPattern, namespace).Count(&n)

	return n, result.Error
}
