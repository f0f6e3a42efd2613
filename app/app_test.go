package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

const testConfig = `
Title = "test"

[Webserver]
Port = 8080

[DB]
Engine = "sqlite"
Path = %q

[Encryption]
KeySource = "file"
KeyFile = %q

[Log]
LogLevel = "info"
AppName = "go-secure-settings"
ServiceName = "test"
`

// writeConfig creates a config directory whose data lives in a temporary directory.
func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(testConfig, filepath.Join(dir, "settings.db"), filepath.Join(dir, "master.key"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	return dir
}

// run executes the root command and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	showJSON, showConfig, usageMillis = false, false, false

	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NoError(t, flag.Value.Set(flag.DefValue))
	flag.Changed = false

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestSetAndShow(t *testing.T) {
	dir := writeConfig(t)

	_, err := run(t, "--config", dir, "set", "userName", "Ana")
	require.NoError(t, err)

	_, err = run(t, "--config", dir, "set", "preferredLanguage", "en")
	require.NoError(t, err)

	_, err = run(t, "--config", dir, "set", "notificationVolume", "0.8")
	require.NoError(t, err)

	out, err := run(t, "--config", dir, "show", "--json")
	require.NoError(t, err)

	var s settings.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "Ana", s.UserName)
	assert.Equal(t, "en", s.PreferredLanguage)
	assert.InDelta(t, 0.8, s.NotificationVolume, 1e-6)

	out, err = run(t, "--config", dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuración de Usuario")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "No disponible")
}

func TestSetRejects(t *testing.T) {
	dir := writeConfig(t)

	testCases := []struct {
		name string
		args []string
		err  error
	}{
		{name: "unknown language", args: []string{"set", "preferredLanguage", "fr"}, err: settings.ErrInvalidLanguage},
		{name: "volume out of range", args: []string{"set", "notificationVolume", "1.4"}, err: settings.ErrInvalidVolume},
		{name: "store owned field", args: []string{"set", "totalUsageTime", "99"}, err: settings.ErrReadOnlyField},
		{name: "unknown field", args: []string{"set", "colour", "red"}, err: settings.ErrUnknownField},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--config", dir}, tc.args...)...)
			require.ErrorIs(t, err, tc.err)
		})
	}

	out, err := run(t, "--config", dir, "show", "--json")
	require.NoError(t, err)

	var s settings.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, settings.Defaults(), s)
}

func TestUsage(t *testing.T) {
	dir := writeConfig(t)

	out, err := run(t, "--config", dir, "usage")
	require.NoError(t, err)
	assert.Equal(t, "0 segundos", strings.TrimSpace(out))

	out, err = run(t, "--config", dir, "usage", "--ms")
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))
}

func TestShowConfigDump(t *testing.T) {
	dir := writeConfig(t)

	out, err := run(t, "--config", dir, "show", "--config-dump")
	require.NoError(t, err)
	assert.Contains(t, out, "secure_prefs")

	out, err = run(t, "--config", dir, "show", "--config-dump", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestConfigFromEnv(t *testing.T) {
	dir := writeConfig(t)
	t.Setenv(EnvPrefix+"_CONFIG", dir)

	out, err := run(t, "usage")
	require.NoError(t, err)
	assert.Equal(t, "0 segundos", strings.TrimSpace(out))
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "--config", t.TempDir(), "usage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read main config file")
}

func TestShowJSONKeepsStdoutClean(t *testing.T) {
	dir := writeConfig(t)

	f, err := os.OpenFile(filepath.Join(dir, "main.toml"), os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("\n[Log.Console]\nenabled = true\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// first run creates the master key and logs it
	out, runErr := run(t, "--config", dir, "show", "--json")

	_ = w.Close()
	os.Stdout = stdout
	processOut := <-outC

	require.NoError(t, runErr)
	assert.True(t, json.Valid([]byte(out)))
	assert.NotContains(t, processOut, "master key")
	assert.Empty(t, processOut)
}

func TestShowField(t *testing.T) {
	dir := writeConfig(t)

	_, err := run(t, "--config", dir, "set", "notificationVolume", "0.25")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		args     []string
		expected string
		err      error
	}{
		{name: "default language", args: []string{"show", "preferredLanguage"}, expected: "es"},
		{name: "written volume", args: []string{"show", "notificationVolume"}, expected: "0.25"},
		{name: "store owned field", args: []string{"show", "totalUsageTime"}, expected: "0"},
		{name: "unknown field", args: []string{"show", "colour"}, err: settings.ErrUnknownField},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--config", dir}, tc.args...)...)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, strings.TrimSpace(out))
		})
	}

	_, err = run(t, "--config", dir, "show", "userName", "lastLocation")
	require.Error(t, err)
}
