// Package settings persists the user settings in an encrypted key-value
// namespace and accounts the time spent in sessions.
package settings

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
)

// Store gives typed access to the settings of one namespace.
type Store struct {
	mu  sync.Mutex
	kv  securekv.Store
	now func() time.Time

	sessionStart time.Time
	active       bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open wraps an opened encrypted namespace.
func Open(kv securekv.Store, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the persisted value of f or its default.
func (s *Store) Get(f Field) (any, error) {
	switch f {
	case FieldUserName:
		return s.UserName()
	case FieldDarkTheme:
		return s.IsDarkTheme()
	case FieldPreferredLanguage:
		return s.PreferredLanguage()
	case FieldNotificationVolume:
		return s.NotificationVolume()
	case FieldLastAccessTime:
		return s.LastAccessTime()
	case FieldLastLocation:
		return s.LastLocation()
	case FieldTotalUsageTime:
		return s.TotalUsageTime()
	default:
		return nil, ErrUnknownField
	}
}

// Set writes value to f. The dynamic type of value must match the field.
func (s *Store) Set(f Field, value any) error {
	if f.ReadOnly() {
		return ErrReadOnlyField
	}

	switch f {
	case FieldUserName, FieldPreferredLanguage, FieldLastLocation:
		v, ok := value.(string)
		if !ok {
			return typeErr(f, "string", value)
		}

		switch f {
		case FieldUserName:
			return s.SetUserName(v)
		case FieldPreferredLanguage:
			return s.SetPreferredLanguage(v)
		default:
			return s.SetLastLocation(v)
		}
	case FieldDarkTheme:
		v, ok := value.(bool)
		if !ok {
			return typeErr(f, "bool", value)
		}

		return s.SetDarkTheme(v)
	case FieldNotificationVolume:
		switch v := value.(type) {
		case float32:
			return s.SetNotificationVolume(v)
		case float64:
			return s.SetNotificationVolume(float32(v))
		default:
			return typeErr(f, "float32", value)
		}
	default:
		return ErrUnknownField
	}
}

// SetText parses raw according to the type of f and writes it.
func (s *Store) SetText(f Field, raw string) error {
	switch f {
	case FieldDarkTheme:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return invalid(errors.Wrapf(err, "%s", f))
		}

		return s.Set(f, v)
	case FieldNotificationVolume:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return invalid(errors.Wrapf(err, "%s", f))
		}

		return s.Set(f, float32(v))
	default:
		return s.Set(f, raw)
	}
}

func typeErr(f Field, want string, got any) error {
	return invalid(fmt.Errorf("%s wants a %s, got %T", f, want, got))
}

// Load reads every user facing field.
func (s *Store) Load() (Settings, error) {
	var (
		out Settings
		err error
	)

	if out.UserName, err = s.UserName(); err != nil {
		return Settings{}, err
	}

	if out.IsDarkTheme, err = s.IsDarkTheme(); err != nil {
		return Settings{}, err
	}

	if out.PreferredLanguage, err = s.PreferredLanguage(); err != nil {
		return Settings{}, err
	}

	if out.NotificationVolume, err = s.NotificationVolume(); err != nil {
		return Settings{}, err
	}

	if out.LastAccessTime, err = s.LastAccessTime(); err != nil {
		return Settings{}, err
	}

	if out.LastLocation, err = s.LastLocation(); err != nil {
		return Settings{}, err
	}

	if out.TotalUsageTime, err = s.TotalUsageTime(); err != nil {
		return Settings{}, err
	}

	return out, nil
}

// UserName returns the user name.
func (s *Store) UserName() (string, error) {
	return readErr(s.kv.GetString(keyUserName, DefaultUserName))
}

// SetUserName stores the user name.
func (s *Store) SetUserName(v string) error {
	return s.write(FieldUserName, s.kv.SetString(keyUserName, v))
}

// IsDarkTheme reports whether the dark theme is selected.
func (s *Store) IsDarkTheme() (bool, error) {
	return readErr(s.kv.GetBool(keyDarkTheme, DefaultDarkTheme))
}

// SetDarkTheme selects the dark or the light theme.
func (s *Store) SetDarkTheme(v bool) error {
	return s.write(FieldDarkTheme, s.kv.SetBool(keyDarkTheme, v))
}

// PreferredLanguage returns the language code.
func (s *Store) PreferredLanguage() (string, error) {
	return readErr(s.kv.GetString(keyPreferredLanguage, DefaultPreferredLanguage))
}

// SetPreferredLanguage stores code, which must be es or en.
func (s *Store) SetPreferredLanguage(code string) error {
	if err := ValidateLanguage(code); err != nil {
		return err
	}

	return s.write(FieldPreferredLanguage, s.kv.SetString(keyPreferredLanguage, code))
}

// NotificationVolume returns the volume in [0, 1].
func (s *Store) NotificationVolume() (float32, error) {
	return readErr(s.kv.GetFloat32(keyNotificationVolume, DefaultNotificationVolume))
}

// SetNotificationVolume stores v, which must lie in [0, 1].
func (s *Store) SetNotificationVolume(v float32) error {
	if err := ValidateVolume(v); err != nil {
		return err
	}

	return s.write(FieldNotificationVolume, s.kv.SetFloat32(keyNotificationVolume, v))
}

// LastAccessTime returns the start of the latest session, formatted with LastAccessLayout.
func (s *Store) LastAccessTime() (string, error) {
	return readErr(s.kv.GetString(keyLastAccess, DefaultLastAccessTime))
}

// LastLocation returns the last location. Nothing in this program populates it.
func (s *Store) LastLocation() (string, error) {
	return readErr(s.kv.GetString(keyLastLocation, DefaultLastLocation))
}

// SetLastLocation stores the last location.
func (s *Store) SetLastLocation(v string) error {
	return s.write(FieldLastLocation, s.kv.SetString(keyLastLocation, v))
}

// TotalUsageTime returns the accumulated session time in milliseconds.
func (s *Store) TotalUsageTime() (int64, error) {
	return readErr(s.kv.GetInt64(keyTotalUsageTime, DefaultTotalUsageTime))
}

func (s *Store) write(f Field, err error) error {
	if err != nil {
		return errors.Wrapf(err, "failed to store %s", f)
	}

	writesTotal.WithLabelValues(string(f)).Inc()
	log.Debug().Str("field", string(f)).Msg("setting stored")

	return nil
}

func readErr[T any](v T, err error) (T, error) {
	if err != nil {
		return v, errors.Wrap(err, "failed to read setting")
	}

	return v, nil
}
