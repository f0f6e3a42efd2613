package settings_test

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db/controller/kv"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db/models"
	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

var masterKey = bytes.Repeat([]byte{7}, securekv.KeySize)

func newStore(t *testing.T, opts ...settings.Option) (*settings.Store, *securekv.Encrypted) {
	t.Helper()

	enc, err := securekv.Open(securekv.NewMemory(), masterKey)
	require.NoError(t, err)

	return settings.Open(enc, opts...), enc
}

// fakeClock returns a clock and a function moving it forward.
func fakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start

	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestDefaults(t *testing.T) {
	store, _ := newStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), loaded)

	testCases := []struct {
		field    settings.Field
		expected any
	}{
		{field: settings.FieldUserName, expected: ""},
		{field: settings.FieldDarkTheme, expected: false},
		{field: settings.FieldPreferredLanguage, expected: "es"},
		{field: settings.FieldNotificationVolume, expected: float32(0.5)},
		{field: settings.FieldLastAccessTime, expected: ""},
		{field: settings.FieldLastLocation, expected: ""},
		{field: settings.FieldTotalUsageTime, expected: int64(0)},
	}

	for _, tc := range testCases {
		t.Run(string(tc.field), func(t *testing.T) {
			got, err := store.Get(tc.field)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	testCases := []struct {
		field settings.Field
		value any
	}{
		{field: settings.FieldUserName, value: "María José"},
		{field: settings.FieldUserName, value: ""},
		{field: settings.FieldDarkTheme, value: true},
		{field: settings.FieldDarkTheme, value: false},
		{field: settings.FieldPreferredLanguage, value: "en"},
		{field: settings.FieldPreferredLanguage, value: "es"},
		{field: settings.FieldNotificationVolume, value: float32(0)},
		{field: settings.FieldNotificationVolume, value: float32(0.73)},
		{field: settings.FieldNotificationVolume, value: float32(1)},
		{field: settings.FieldLastLocation, value: "Madrid"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.field), func(t *testing.T) {
			require.NoError(t, store.Set(tc.field, tc.value))

			got, err := store.Get(tc.field)
			require.NoError(t, err)
			assert.Equal(t, tc.value, got)
		})
	}
}

func TestSetRejects(t *testing.T) {
	testCases := []struct {
		name        string
		field       settings.Field
		value       any
		expectedErr error
	}{
		{name: "volume above range", field: settings.FieldNotificationVolume, value: float32(1.4), expectedErr: settings.ErrInvalidVolume},
		{name: "volume below range", field: settings.FieldNotificationVolume, value: float32(-0.1), expectedErr: settings.ErrInvalidVolume},
		{name: "volume NaN", field: settings.FieldNotificationVolume, value: float32(math.NaN()), expectedErr: settings.ErrInvalidVolume},
		{name: "unknown language", field: settings.FieldPreferredLanguage, value: "fr", expectedErr: settings.ErrInvalidLanguage},
		{name: "empty language", field: settings.FieldPreferredLanguage, value: "", expectedErr: settings.ErrInvalidLanguage},
		{name: "upper case language", field: settings.FieldPreferredLanguage, value: "ES", expectedErr: settings.ErrInvalidLanguage},
		{name: "wrong type", field: settings.FieldDarkTheme, value: "yes", expectedErr: settings.ErrInvalidInput},
		{name: "last access is store owned", field: settings.FieldLastAccessTime, value: "now", expectedErr: settings.ErrReadOnlyField},
		{name: "usage is store owned", field: settings.FieldTotalUsageTime, value: int64(5), expectedErr: settings.ErrReadOnlyField},
		{name: "unknown field", field: settings.Field("lastOpenTimeInternal"), value: int64(5), expectedErr: settings.ErrUnknownField},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := newStore(t)

			err := store.Set(tc.field, tc.value)
			require.ErrorIs(t, err, tc.expectedErr)

			loaded, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, settings.Defaults(), loaded, "nothing may be stored")
		})
	}
}

func TestInvalidInputParent(t *testing.T) {
	store, _ := newStore(t)

	require.ErrorIs(t, store.SetNotificationVolume(1.4), settings.ErrInvalidInput)
	require.ErrorIs(t, store.SetPreferredLanguage("fr"), settings.ErrInvalidInput)
}

func TestSetText(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.SetText(settings.FieldDarkTheme, "true"))
	require.NoError(t, store.SetText(settings.FieldNotificationVolume, "0.25"))
	require.NoError(t, store.SetText(settings.FieldUserName, "Ana"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.IsDarkTheme)
	assert.InDelta(t, 0.25, loaded.NotificationVolume, 1e-6)
	assert.Equal(t, "Ana", loaded.UserName)

	require.ErrorIs(t, store.SetText(settings.FieldDarkTheme, "maybe"), settings.ErrInvalidInput)
	require.ErrorIs(t, store.SetText(settings.FieldNotificationVolume, "loud"), settings.ErrInvalidInput)
	require.ErrorIs(t, store.SetText(settings.FieldNotificationVolume, "1.4"), settings.ErrInvalidVolume)
}

func TestSession(t *testing.T) {
	start := time.Date(2024, 3, 9, 18, 4, 5, 123_000_000, time.UTC)
	clock, advance := fakeClock(start)

	store, enc := newStore(t, settings.WithClock(clock))

	require.False(t, store.SessionActive())
	require.NoError(t, store.StartSession())
	require.True(t, store.SessionActive())

	last, err := store.LastAccessTime()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09T18:04:05.123", last)

	openedAt, err := enc.GetInt64("last_open_time", 0)
	require.NoError(t, err)
	assert.Equal(t, start.UnixMilli(), openedAt)

	advance(1500 * time.Millisecond)
	require.NoError(t, store.EndSession())
	require.False(t, store.SessionActive())

	total, err := store.TotalUsageTime()
	require.NoError(t, err)
	assert.Equal(t, int64(1500), total)

	// a second session accumulates
	require.NoError(t, store.StartSession())
	advance(time.Hour)
	require.NoError(t, store.EndSession())

	total, err = store.TotalUsageTime()
	require.NoError(t, err)
	assert.Equal(t, int64(1500+3_600_000), total)

	last, err = store.LastAccessTime()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09T18:04:06.623", last)
}

func TestSessionRealClock(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.StartSession())
	begin := time.Now()

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, store.EndSession())
	elapsed := time.Since(begin).Milliseconds()

	total, err := store.TotalUsageTime()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(20))
	assert.LessOrEqual(t, total, elapsed+5)
}

func TestEndSessionWithoutStart(t *testing.T) {
	clock, _ := fakeClock(time.Now())
	store, _ := newStore(t, settings.WithClock(clock))

	require.NoError(t, store.EndSession())

	total, err := store.TotalUsageTime()
	require.NoError(t, err)
	assert.Zero(t, total)

	// ending twice only counts the first end
	require.NoError(t, store.StartSession())
	require.NoError(t, store.EndSession())
	require.NoError(t, store.EndSession())

	total, err = store.TotalUsageTime()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestEndSessionClockStepBack(t *testing.T) {
	clock, advance := fakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store, _ := newStore(t, settings.WithClock(clock))

	require.NoError(t, store.StartSession())
	advance(10 * time.Second)
	require.NoError(t, store.EndSession())

	require.NoError(t, store.StartSession())
	advance(-time.Minute)
	require.NoError(t, store.EndSession())

	total, err := store.TotalUsageTime()
	require.NoError(t, err)
	assert.Equal(t, int64(10_000), total, "usage never decreases")
}

func TestStorageFailure(t *testing.T) {
	enc, err := securekv.Open(&flakyBackend{Memory: securekv.NewMemory()}, masterKey)
	require.NoError(t, err)

	store := settings.Open(enc)
	backendDown = true
	t.Cleanup(func() { backendDown = false })

	_, err = store.UserName()
	require.ErrorIs(t, err, errDiskGone)

	require.ErrorIs(t, store.SetUserName("Ana"), errDiskGone)
	require.ErrorIs(t, store.StartSession(), errDiskGone)
	assert.False(t, store.SessionActive())

	_, err = store.Load()
	require.ErrorIs(t, err, errDiskGone)
}

func TestDurabilityAcrossInstances(t *testing.T) {
	cfg := &config.DB{Engine: config.EngineSQLite, Path: filepath.Join(t.TempDir(), "settings.db")}

	open := func(t *testing.T, key []byte) (*settings.Store, func()) {
		t.Helper()

		gdb, err := db.Open(cfg)
		require.NoError(t, err)

		enc, err := securekv.Open(kv.NewBackend(gdb, "secure_prefs"), key)
		if err != nil {
			_ = db.Close(gdb)
		}

		require.NoError(t, err)

		return settings.Open(enc), func() { require.NoError(t, db.Close(gdb)) }
	}

	first, closeFirst := open(t, masterKey)
	require.NoError(t, first.SetUserName("Ana"))
	require.NoError(t, first.SetDarkTheme(true))
	require.NoError(t, first.SetPreferredLanguage("en"))
	require.NoError(t, first.SetNotificationVolume(0.8))
	require.NoError(t, first.StartSession())
	require.NoError(t, first.EndSession())
	expected, err := first.Load()
	require.NoError(t, err)
	closeFirst()

	second, closeSecond := open(t, masterKey)
	defer closeSecond()

	loaded, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, expected, loaded)
	assert.Equal(t, "Ana", loaded.UserName)
	assert.NotEmpty(t, loaded.LastAccessTime)

	gdb, err := db.Open(cfg)
	require.NoError(t, err)

	defer func() { _ = db.Close(gdb) }()

	_, err = securekv.Open(kv.NewBackend(gdb, "secure_prefs"), bytes.Repeat([]byte{8}, securekv.KeySize))
	require.ErrorIs(t, err, securekv.ErrInitialization)

	var rows []models.KVEntry
	require.NoError(t, gdb.Where("namespace = ?", "secure_prefs").Find(&rows).Error)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		assert.NotContains(t, row.Name, "user_name")
		assert.False(t, bytes.Contains(row.Value, []byte("Ana")))
	}
}

var (
	errDiskGone = errors.New("disk gone")
	backendDown bool
)

type flakyBackend struct {
	*securekv.Memory
}

func (f *flakyBackend) Get(name string) ([]byte, error) {
	if backendDown {
		return nil, errDiskGone
	}

	return f.Memory.Get(name)
}

func (f *flakyBackend) Set(name string, value []byte) error {
	if backendDown {
		return errDiskGone
	}

	return f.Memory.Set(name, value)
}
