package securekv

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// type tags prefixed to every plaintext
const (
	tagString  byte = 's'
	tagBool    byte = 'b'
	tagFloat32 byte = 'f'
	tagInt64   byte = 'i'
	tagCanary  byte = 'c'
)

// canaryName is stored in the clear; hashed names are 64 hex chars and never collide with it.
const canaryName = "securekv.canary"

var canaryValue = []byte("securekv canary v1")

// Encrypted is a Store sealing every entry of a Backend with keys derived from a master key.
type Encrypted struct {
	backend Backend
	suite   *cipherSuite
}

var _ Store = (*Encrypted)(nil)

// Open binds master to backend. The first Open of an empty namespace writes a
// canary entry; later opens must decrypt it, so a wrong key or a corrupt
// namespace fails here with ErrInitialization instead of on the first read.
func Open(backend Backend, master []byte) (*Encrypted, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", ErrInitialization)
	}

	suite, err := newCipherSuite(master)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	e := &Encrypted{backend: backend, suite: suite}

	if err := e.checkCanary(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	return e, nil
}

func (e *Encrypted) checkCanary() error {
	sealed, err := e.backend.Get(canaryName)

	switch {
	case errors.Is(err, ErrNotFound):
		plain := append([]byte{tagCanary}, canaryValue...)

		sealed, err = e.suite.seal(plain, canaryName)
		if err != nil {
			return err
		}

		return e.backend.Set(canaryName, sealed)
	case err != nil:
		return err
	}

	plain, err := e.suite.open(sealed, canaryName)
	if err != nil {
		return fmt.Errorf("canary: %w", err)
	}

	if len(plain) == 0 || plain[0] != tagCanary || !bytes.Equal(plain[1:], canaryValue) {
		return errors.New("canary has unexpected content")
	}

	return nil
}

// get returns the payload stored for name, or ok == false if absent.
func (e *Encrypted) get(name string, tag byte) (payload []byte, ok bool, err error) {
	if name == "" {
		return nil, false, ErrEmptyName
	}

	stored := e.suite.hashName(name)

	sealed, err := e.backend.Get(stored)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	plain, err := e.suite.open(sealed, stored)
	if err != nil {
		return nil, false, err
	}

	if len(plain) == 0 || plain[0] != tag {
		return nil, false, ErrTypeMismatch
	}

	return plain[1:], true, nil
}

func (e *Encrypted) set(name string, tag byte, payload []byte) error {
	if name == "" {
		return ErrEmptyName
	}

	stored := e.suite.hashName(name)

	sealed, err := e.suite.seal(append([]byte{tag}, payload...), stored)
	if err != nil {
		return err
	}

	return e.backend.Set(stored, sealed)
}

// GetString implements Store.
func (e *Encrypted) GetString(name, def string) (string, error) {
	p, ok, err := e.get(name, tagString)
	if err != nil || !ok {
		return def, err
	}

	return string(p), nil
}

// SetString implements Store.
func (e *Encrypted) SetString(name, value string) error {
	return e.set(name, tagString, []byte(value))
}

// GetBool implements Store.
func (e *Encrypted) GetBool(name string, def bool) (bool, error) {
	p, ok, err := e.get(name, tagBool)
	if err != nil || !ok {
		return def, err
	}

	if len(p) != 1 {
		return def, ErrDecrypt
	}

	return p[0] == 1, nil
}

// SetBool implements Store.
func (e *Encrypted) SetBool(name string, value bool) error {
	var b byte
	if value {
		b = 1
	}

	return e.set(name, tagBool, []byte{b})
}

// GetFloat32 implements Store.
func (e *Encrypted) GetFloat32(name string, def float32) (float32, error) {
	p, ok, err := e.get(name, tagFloat32)
	if err != nil || !ok {
		return def, err
	}

	if len(p) != 4 { //nolint:mnd
		return def, ErrDecrypt
	}

	return math.Float32frombits(binary.BigEndian.Uint32(p)), nil
}

// SetFloat32 implements Store.
func (e *Encrypted) SetFloat32(name string, value float32) error {
	return e.set(name, tagFloat32, binary.BigEndian.AppendUint32(nil, math.Float32bits(value)))
}

// GetInt64 implements Store.
func (e *Encrypted) GetInt64(name string, def int64) (int64, error) {
	p, ok, err := e.get(name, tagInt64)
	if err != nil || !ok {
		return def, err
	}

	if len(p) != 8 { //nolint:mnd
		return def, ErrDecrypt
	}

	return int64(binary.BigEndian.Uint64(p)), nil //nolint:gosec // round trip of SetInt64
}

// SetInt64 implements Store.
func (e *Encrypted) SetInt64(name string, value int64) error {
	return e.set(name, tagInt64, binary.BigEndian.AppendUint64(nil, uint64(value))) //nolint:gosec // round trip
}

// Contains reports whether name holds a value of any type.
func (e *Encrypted) Contains(name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}

	_, err := e.backend.Get(e.suite.hashName(name))

	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	return true, nil
}

// Delete removes name. Deleting an absent name is not an error.
func (e *Encrypted) Delete(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	return e.backend.Delete(e.suite.hashName(name))
}

// StoredName returns the backend name used for name. Exposed for inspection tooling.
func (e *Encrypted) StoredName(name string) string {
	return e.suite.hashName(name)
}
