package keystore

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog/log"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
)

// KeyringItem is the key of the master key item inside the keyring service.
const KeyringItem = "master-key"

// Keyring keeps the master key in the OS keychain.
type Keyring struct {
	cfg config.Encryption
}

// NewKeyring returns a keyring source for cfg.KeyringService.
func NewKeyring(cfg config.Encryption) *Keyring {
	return &Keyring{cfg: cfg}
}

// Name implements Source.
func (k *Keyring) Name() string {
	return "keyring"
}

func (k *Keyring) open() (keyring.Keyring, error) {
	kc := keyring.Config{
		ServiceName:              k.cfg.KeyringService,
		KeychainTrustApplication: true,
		FileDir:                  k.cfg.KeyringFileDir,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	if k.cfg.KeyringPasswordEnv != "" {
		if pw := os.Getenv(k.cfg.KeyringPasswordEnv); pw != "" {
			kc.FilePasswordFunc = keyring.FixedStringPrompt(pw)
		}
	}

	if k.cfg.KeyringBackend != "" {
		kc.AllowedBackends = []keyring.BackendType{keyring.BackendType(k.cfg.KeyringBackend)}
	}

	return keyring.Open(kc) //nolint:wrapcheck
}

// MasterKey implements Source.
func (k *Keyring) MasterKey() ([]byte, error) {
	ring, err := k.open()
	if err != nil {
		return nil, initErr(k.Name(), err)
	}

	item, err := ring.Get(KeyringItem)

	switch {
	case errors.Is(err, keyring.ErrKeyNotFound):
		return k.create(ring)
	case err != nil:
		return nil, initErr(k.Name(), err)
	case len(item.Data) != securekv.KeySize:
		return nil, initErr(k.Name(), fmt.Errorf("keyring item holds %d bytes, want %d", len(item.Data), securekv.KeySize))
	}

	return item.Data, nil
}

func (k *Keyring) create(ring keyring.Keyring) ([]byte, error) {
	key, err := randomKey()
	if err != nil {
		return nil, initErr(k.Name(), err)
	}

	err = ring.Set(keyring.Item{
		Key:         KeyringItem,
		Data:        key,
		Label:       k.cfg.KeyringService + " master key",
		Description: "master key of the encrypted settings namespace",
	})
	if err != nil {
		return nil, initErr(k.Name(), err)
	}

	log.Info().Str("service", k.cfg.KeyringService).Msg("stored new master key in keyring")

	return key, nil
}
