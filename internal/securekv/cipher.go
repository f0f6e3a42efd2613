package securekv

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of a master key in bytes.
const KeySize = 32

const (
	nameKeyInfo  = "securekv/v1 name"
	valueKeyInfo = "securekv/v1 value"
)

// cipherSuite holds the subkeys derived from one master key.
type cipherSuite struct {
	nameKey []byte
	aead    cipher.AEAD
	rand    io.Reader
}

func newCipherSuite(master []byte) (*cipherSuite, error) {
	if len(master) != KeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", KeySize, len(master))
	}

	nameKey, err := deriveKey(master, nameKeyInfo)
	if err != nil {
		return nil, err
	}

	valueKey, err := deriveKey(master, valueKeyInfo)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(valueKey)
	if err != nil {
		return nil, err
	}

	return &cipherSuite{nameKey: nameKey, aead: aead, rand: rand.Reader}, nil
}

func deriveKey(master []byte, info string) ([]byte, error) {
	key := make([]byte, KeySize)

	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), key); err != nil {
		return nil, err
	}

	return key, nil
}

// hashName maps a plaintext name to its deterministic stored form.
func (c *cipherSuite) hashName(name string) string {
	mac, _ := blake2b.New256(c.nameKey) //nolint:errcheck // key length is fixed
	mac.Write([]byte(name))

	return hex.EncodeToString(mac.Sum(nil))
}

// seal returns nonce || ciphertext, authenticating ad.
func (c *cipherSuite) seal(plaintext []byte, ad string) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())

	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, err
	}

	return c.aead.Seal(nonce, nonce, plaintext, []byte(ad)), nil
}

func (c *cipherSuite) open(sealed []byte, ad string) ([]byte, error) {
	n := c.aead.NonceSize()
	if len(sealed) < n+c.aead.Overhead() {
		return nil, ErrDecrypt
	}

	plaintext, err := c.aead.Open(nil, sealed[:n], sealed[n:], []byte(ad))
	if err != nil {
		return nil, ErrDecrypt
	}

	return plaintext, nil
}
