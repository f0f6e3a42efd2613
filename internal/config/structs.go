package config

import (
	"github.com/GoSecureSettings/GoSecureSettings/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode    bool // enable dev mode for development
	DB         DB
	Encryption Encryption
	Log        logger.Log
	Title      string
	Webserver  Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	DisableRecover bool   // disable recover middleware
	Host           string // listening address, loopback by default
	Port           int    // listening port for the webserver
	ShutDownTime   int    // seconds to answer checkalive with 503 before shutdown
	CheckAliveURI  string // path of the liveness check
	MetricsURI     string // path of the prometheus endpoint, empty disables it
}

// DB holds the database configuration settings.
type DB struct {
	Engine    string // sqlite, mysql or postgres
	Path      string // sqlite database file
	Namespace string // name of the encrypted key-value namespace
	Extras    string
	Host      string
	Port      int
	User      string
	Password  string
	Name      string
}

// Encryption selects where the master key of the namespace comes from.
type Encryption struct {
	KeySource string // file, keyring or passphrase

	// file
	KeyFile string

	// keyring
	KeyringService     string
	KeyringBackend     string // empty selects the OS default, "file" forces the encrypted file backend
	KeyringFileDir     string
	KeyringPasswordEnv string // env var holding the password of the file backend

	// passphrase
	PassphraseEnv string
	Argon2Salt    string
}
