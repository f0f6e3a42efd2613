// Package keystore provides the master key of the encrypted settings namespace.
package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
)

// ErrInitialization is returned when no usable master key can be obtained.
var ErrInitialization = errors.New("keystore: initialization failed")

// Source yields the master key. The same source returns the same key on every call.
type Source interface {
	MasterKey() ([]byte, error)
	Name() string
}

// New selects the key source configured in cfg.
func New(cfg config.Encryption) (Source, error) {
	switch cfg.KeySource {
	case config.KeySourceFile, "":
		return NewFile(cfg.KeyFile), nil
	case config.KeySourceKeyring:
		return NewKeyring(cfg), nil
	case config.KeySourcePassphrase:
		return NewPassphrase(cfg.PassphraseEnv, cfg.Argon2Salt), nil
	default:
		return nil, fmt.Errorf("%w: %w", ErrInitialization, config.ErrUnknownKeySource)
	}
}

func generateKey(r io.Reader) ([]byte, error) {
	key := make([]byte, securekv.KeySize)

	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}

	return key, nil
}

func randomKey() ([]byte, error) {
	return generateKey(rand.Reader)
}

func initErr(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInitialization, source, err)
}
