package settings

import (
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

// ValidateLanguage rejects every code except es and en.
func ValidateLanguage(code string) error {
	if err := validate.Var(code, "oneof=es en"); err != nil {
		return invalid(ErrInvalidLanguage)
	}

	return nil
}

// ValidateVolume rejects NaN and values outside [0, 1].
func ValidateVolume(v float32) error {
	if math.IsNaN(float64(v)) {
		return invalid(ErrInvalidVolume)
	}

	if err := validate.Var(v, "gte=0,lte=1"); err != nil {
		return invalid(ErrInvalidVolume)
	}

	return nil
}

// Validate checks a whole snapshot, for example one read back from an older namespace.
func (s Settings) Validate() error {
	if err := ValidateLanguage(s.PreferredLanguage); err != nil {
		return err
	}

	if err := ValidateVolume(s.NotificationVolume); err != nil {
		return err
	}

	return validate.Struct(s) //nolint:wrapcheck
}
