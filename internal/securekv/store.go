// Package securekv implements an encrypted, typed key-value namespace on top of
// a raw byte backend. Names are stored as keyed BLAKE2b MACs and values are
// sealed with XChaCha20-Poly1305, so neither is readable at rest.
package securekv

// Backend persists opaque values by name.
//
// Get returns ErrNotFound when the name is absent. Delete of an absent name is not an error.
type Backend interface {
	Get(name string) ([]byte, error)
	Set(name string, value []byte) error
	Delete(name string) error
}

// Store is the typed view used by the settings layer.
// Getters return def when the name was never written.
type Store interface {
	GetString(name, def string) (string, error)
	SetString(name, value string) error
	GetBool(name string, def bool) (bool, error)
	SetBool(name string, value bool) error
	GetFloat32(name string, def float32) (float32, error)
	SetFloat32(name string, value float32) error
	GetInt64(name string, def int64) (int64, error)
	SetInt64(name string, value int64) error
	Contains(name string) (bool, error)
	Delete(name string) error
}
