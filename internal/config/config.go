// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON holds a JSON document merged over the TOML file.
	EnvConfigJSON = "GO_SECURE_SETTINGS_CONFIG_JSON"

	// MainFile is the name of the main configuration file inside the config directory.
	MainFile = "main.toml"

	// EngineSQLite is the default, file based database engine.
	EngineSQLite = "sqlite"
	// EngineMySQL selects the gorm mysql driver.
	EngineMySQL = "mysql"
	// EnginePostgres selects the gorm postgres driver.
	EnginePostgres = "postgres"

	// KeySourceFile reads the master key from a local key file.
	KeySourceFile = "file"
	// KeySourceKeyring reads the master key from the OS keyring.
	KeySourceKeyring = "keyring"
	// KeySourcePassphrase derives the master key from a passphrase.
	KeySourcePassphrase = "passphrase"

	defaultNamespace      = "secure_prefs"
	defaultHost           = "127.0.0.1"
	defaultShutDownTime   = 5
	defaultCheckAliveURI  = "/checkalive"
	defaultKeyringService = "go-secure-settings"
	defaultPassphraseEnv  = "GO_SECURE_SETTINGS_PASSPHRASE"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(filepath.Join(path, MainFile), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(redacted(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(redacted(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// redacted returns a copy without credentials.
func redacted(c *Config) Config {
	out := *c
	if out.DB.Password != "" {
		out.DB.Password = "********"
	}

	return out
}

// validate checks the settings the daemon can not start without and fills in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.Host == "" {
		c.Webserver.Host = defaultHost
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	if c.DB.Namespace == "" {
		c.DB.Namespace = defaultNamespace
	}

	switch c.DB.Engine {
	case "", EngineSQLite:
		c.DB.Engine = EngineSQLite
		if c.DB.Path == "" {
			return errors.Wrap(ErrEmptyDBPath, invalidErrMessage)
		}
	case EngineMySQL, EnginePostgres:
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	switch c.Encryption.KeySource {
	case "", KeySourceFile:
		c.Encryption.KeySource = KeySourceFile
		if c.Encryption.KeyFile == "" {
			return errors.Wrap(ErrEmptyKeyFile, invalidErrMessage)
		}
	case KeySourceKeyring:
		if c.Encryption.KeyringService == "" {
			c.Encryption.KeyringService = defaultKeyringService
		}
	case KeySourcePassphrase:
		if c.Encryption.Argon2Salt == "" {
			return errors.Wrap(ErrEmptyArgon2Salt, invalidErrMessage)
		}

		if c.Encryption.PassphraseEnv == "" {
			c.Encryption.PassphraseEnv = defaultPassphraseEnv
		}
	default:
		return errors.Wrap(ErrUnknownKeySource, invalidErrMessage)
	}

	return nil
}
