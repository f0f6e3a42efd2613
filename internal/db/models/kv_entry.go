// Package models contains database model definitions.
package models

import "time"

// KVEntry is one sealed entry of an encrypted key-value namespace.
// Name is a keyed hash of the plaintext key, Value the sealed payload.
type KVEntry struct {
	ID        uint64 `gorm:"primaryKey"`
	Namespace string `gorm:"size:64;not null;uniqueIndex:idx_kv_namespace_name"`
	Name      string `gorm:"size:128;not null;uniqueIndex:idx_kv_namespace_name"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of gorm's naming strategy.
func (KVEntry) TableName() string {
	return "kv_entries"
}
