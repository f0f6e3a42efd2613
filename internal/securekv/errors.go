package securekv

import "errors"

var (
	// ErrNotFound is returned by a Backend when a name has no value.
	ErrNotFound = errors.New("securekv: not found")
	// ErrInitialization is returned by Open when the namespace can't be used with the given key.
	ErrInitialization = errors.New("securekv: initialization failed")
	// ErrTypeMismatch is returned when a value is read through another type than it was written with.
	ErrTypeMismatch = errors.New("securekv: type mismatch")
	// ErrDecrypt is returned when a stored value fails authentication.
	ErrDecrypt = errors.New("securekv: value can't be decrypted")
	// ErrEmptyName is returned for operations on an empty name.
	ErrEmptyName = errors.New("securekv: name cannot be empty")
)
