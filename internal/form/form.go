// Package form holds the editable state of the settings screen. It is loaded
// once from the store and forwards every change straight back to it.
package form

import (
	"fmt"
	"math"
	"sync"

	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

// Store is the part of settings.Store the form writes through to.
type Store interface {
	Load() (settings.Settings, error)
	SetUserName(v string) error
	SetDarkTheme(v bool) error
	SetPreferredLanguage(code string) error
	SetNotificationVolume(v float32) error
}

// Form is a snapshot of the settings plus write-through mutators.
type Form struct {
	mu    sync.Mutex
	store Store
	state settings.Settings
}

// New reads the current settings once.
func New(store Store) (*Form, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Form{store: store, state: state}, nil
}

// State returns a copy of the local state.
func (f *Form) State() settings.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// SetUserName stores the user name.
func (f *Form) SetUserName(v string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.store.SetUserName(v); err != nil {
		return err
	}

	f.state.UserName = v

	return nil
}

// SetDarkTheme stores the theme toggle.
func (f *Form) SetDarkTheme(v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.store.SetDarkTheme(v); err != nil {
		return err
	}

	f.state.IsDarkTheme = v

	return nil
}

// SetLanguage stores the language, es or en.
func (f *Form) SetLanguage(code string) error {
	if err := settings.ValidateLanguage(code); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.store.SetPreferredLanguage(code); err != nil {
		return err
	}

	f.state.PreferredLanguage = code

	return nil
}

// SetVolume clamps v to [0, 1] and stores it. It returns the stored value.
func (f *Form) SetVolume(v float32) (float32, error) {
	v, err := ClampVolume(v)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.store.SetNotificationVolume(v); err != nil {
		return 0, err
	}

	f.state.NotificationVolume = v

	return v, nil
}

// ClampVolume limits v to [0, 1]. NaN has no sensible clamp and is rejected.
func ClampVolume(v float32) (float32, error) {
	switch {
	case math.IsNaN(float64(v)):
		return 0, settings.ValidateVolume(v)
	case v < 0:
		return 0, nil
	case v > 1:
		return 1, nil
	}

	return v, nil
}

// VolumePercent is the slider label value.
func (f *Form) VolumePercent() int {
	return VolumePercent(f.State().NotificationVolume)
}

// VolumeLabel renders "Volumen de Notificaciones: N%".
func (f *Form) VolumeLabel() string {
	return fmt.Sprintf("%s: %d%%", LabelVolume, f.VolumePercent())
}

// LastLocationDisplay is the last location or a placeholder.
func (f *Form) LastLocationDisplay() string {
	return OrPlaceholder(f.State().LastLocation)
}

// UsageDisplay is the formatted total usage time.
func (f *Form) UsageDisplay() string {
	return FormatUsage(f.State().TotalUsageTime)
}

// Languages returns the options of the language selector.
func Languages() []Option {
	return []Option{
		{Value: settings.LanguageSpanish, Label: LabelSpanish},
		{Value: settings.LanguageEnglish, Label: LabelEnglish},
	}
}
