package settings

import "errors"

var (
	// ErrInvalidInput is the parent of every rejected value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidLanguage is returned for a language code other than es or en.
	ErrInvalidLanguage = errors.New("preferred language must be es or en")
	// ErrInvalidVolume is returned for a notification volume outside [0, 1].
	ErrInvalidVolume = errors.New("notification volume must be between 0 and 1")
	// ErrReadOnlyField is returned when a store owned field is written from outside.
	ErrReadOnlyField = errors.New("field is maintained by the store and can't be set")
	// ErrUnknownField is returned for a field name that does not exist.
	ErrUnknownField = errors.New("unknown field")
)

// invalid joins a specific validation error with ErrInvalidInput.
func invalid(err error) error {
	return errors.Join(ErrInvalidInput, err)
}
