package keystore

import (
	"errors"
	"os"

	"golang.org/x/crypto/argon2"

	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
)

// argon2id parameters, RFC 9106 second recommended option
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Passphrase derives the master key from a passphrase held in an environment variable.
type Passphrase struct {
	env  string
	salt string
}

// NewPassphrase returns a passphrase source.
func NewPassphrase(env, salt string) *Passphrase {
	return &Passphrase{env: env, salt: salt}
}

// Name implements Source.
func (p *Passphrase) Name() string {
	return "passphrase"
}

// MasterKey implements Source.
func (p *Passphrase) MasterKey() ([]byte, error) {
	if p.salt == "" {
		return nil, initErr(p.Name(), errors.New("salt is empty"))
	}

	pass := os.Getenv(p.env)
	if pass == "" {
		return nil, initErr(p.Name(), errors.New("environment variable "+p.env+" is empty"))
	}

	return argon2.IDKey([]byte(pass), []byte(p.salt), argonTime, argonMemory, argonThreads, securekv.KeySize), nil
}
