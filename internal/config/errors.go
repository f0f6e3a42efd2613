package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not supported.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be sqlite, mysql or postgres")

	// ErrEmptyDBPath error if the sqlite engine is used without db.path.
	ErrEmptyDBPath = errors.New("toml config db.path can not be empty for the sqlite engine")

	// ErrUnknownKeySource error if config encryption.keysource is not supported.
	ErrUnknownKeySource = errors.New("toml config encryption.keysource must be file, keyring or passphrase")

	// ErrEmptyKeyFile error if the file key source is used without encryption.keyfile.
	ErrEmptyKeyFile = errors.New("toml config encryption.keyfile can not be empty for the file key source")

	// ErrEmptyArgon2Salt error if the passphrase key source is used without encryption.argon2salt.
	ErrEmptyArgon2Salt = errors.New("toml config encryption.argon2salt can not be empty for the passphrase key source")
)
