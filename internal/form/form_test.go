package form_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSecureSettings/GoSecureSettings/internal/form"
	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

func newStore(t *testing.T) *settings.Store {
	t.Helper()

	enc, err := securekv.Open(securekv.NewMemory(), bytes.Repeat([]byte{3}, securekv.KeySize))
	require.NoError(t, err)

	return settings.Open(enc)
}

func TestFormatUsage(t *testing.T) {
	testCases := []struct {
		ms       int64
		expected string
	}{
		{ms: 0, expected: "0 segundos"},
		{ms: 999, expected: "0 segundos"},
		{ms: 45_000, expected: "45 segundos"},
		{ms: 60_000, expected: "1 minutos 0 segundos"},
		{ms: 300_000, expected: "5 minutos 0 segundos"},
		{ms: 3_600_000, expected: "1 horas 0 minutos 0 segundos"},
		{ms: 3_661_000, expected: "1 horas 1 minutos 1 segundos"},
		{ms: 90_061_500, expected: "25 horas 1 minutos 1 segundos"},
		{ms: -5, expected: "0 segundos"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, form.FormatUsage(tc.ms))
		})
	}
}

func TestVolumePercent(t *testing.T) {
	assert.Equal(t, 50, form.VolumePercent(0.5))
	assert.Equal(t, 0, form.VolumePercent(0))
	assert.Equal(t, 100, form.VolumePercent(1))
	assert.Equal(t, 73, form.VolumePercent(0.739))
}

func TestClampVolume(t *testing.T) {
	testCases := []struct {
		in       float32
		expected float32
	}{
		{in: 1.4, expected: 1},
		{in: -3, expected: 0},
		{in: 0.3, expected: 0.3},
		{in: 1, expected: 1},
	}

	for _, tc := range testCases {
		got, err := form.ClampVolume(tc.in)
		require.NoError(t, err)
		assert.InDelta(t, tc.expected, got, 1e-9)
	}

	_, err := form.ClampVolume(float32(math.NaN()))
	require.ErrorIs(t, err, settings.ErrInvalidVolume)
}

func TestNewSnapshot(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetUserName("Ana"))
	require.NoError(t, store.SetLastLocation("Sevilla"))

	f, err := form.New(store)
	require.NoError(t, err)

	state := f.State()
	assert.Equal(t, "Ana", state.UserName)
	assert.Equal(t, "es", state.PreferredLanguage)
	assert.Equal(t, 50, f.VolumePercent())
	assert.Equal(t, "Volumen de Notificaciones: 50%", f.VolumeLabel())
	assert.Equal(t, "Sevilla", f.LastLocationDisplay())
	assert.Equal(t, "0 segundos", f.UsageDisplay())

	// the form is a snapshot: later store writes are not reflected
	require.NoError(t, store.SetUserName("Luis"))
	assert.Equal(t, "Ana", f.State().UserName)
}

func TestWriteThrough(t *testing.T) {
	store := newStore(t)

	f, err := form.New(store)
	require.NoError(t, err)
	assert.Equal(t, form.NotAvailable, f.LastLocationDisplay())

	require.NoError(t, f.SetUserName("Ana"))
	require.NoError(t, f.SetDarkTheme(true))
	require.NoError(t, f.SetLanguage("en"))

	stored, err := f.SetVolume(1.4)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, stored, 1e-9)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Ana", loaded.UserName)
	assert.True(t, loaded.IsDarkTheme)
	assert.Equal(t, "en", loaded.PreferredLanguage)
	assert.InDelta(t, 1.0, loaded.NotificationVolume, 1e-9)

	assert.Equal(t, loaded, f.State())
}

func TestSetLanguageRejected(t *testing.T) {
	store := newStore(t)

	f, err := form.New(store)
	require.NoError(t, err)

	require.ErrorIs(t, f.SetLanguage("fr"), settings.ErrInvalidLanguage)
	assert.Equal(t, "es", f.State().PreferredLanguage)

	lang, err := store.PreferredLanguage()
	require.NoError(t, err)
	assert.Equal(t, "es", lang)
}

var errStore = errors.New("store unavailable")

type brokenStore struct {
	settings.Settings
	loadErr error
}

func (b *brokenStore) Load() (settings.Settings, error)    { return b.Settings, b.loadErr }
func (b *brokenStore) SetUserName(string) error            { return errStore }
func (b *brokenStore) SetDarkTheme(bool) error             { return errStore }
func (b *brokenStore) SetPreferredLanguage(string) error   { return errStore }
func (b *brokenStore) SetNotificationVolume(float32) error { return errStore }

func TestStoreFailureKeepsLocalState(t *testing.T) {
	_, err := form.New(&brokenStore{loadErr: errStore})
	require.ErrorIs(t, err, errStore)

	f, err := form.New(&brokenStore{Settings: settings.Defaults()})
	require.NoError(t, err)

	require.ErrorIs(t, f.SetUserName("Ana"), errStore)
	require.ErrorIs(t, f.SetDarkTheme(true), errStore)
	require.ErrorIs(t, f.SetLanguage("en"), errStore)

	_, err = f.SetVolume(0.2)
	require.ErrorIs(t, err, errStore)

	assert.Equal(t, settings.Defaults(), f.State())
}

func TestLanguages(t *testing.T) {
	langs := form.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, form.Option{Value: "es", Label: "Español"}, langs[0])
	assert.Equal(t, form.Option{Value: "en", Label: "English"}, langs[1])
}
