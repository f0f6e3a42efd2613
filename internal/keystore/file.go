package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
)

// File keeps the master key as raw bytes in a file readable only by the owner.
type File struct {
	path string
}

// NewFile returns a key file source. The file is created on first use.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name implements Source.
func (f *File) Name() string {
	return "file"
}

// MasterKey implements Source.
func (f *File) MasterKey() ([]byte, error) {
	if f.path == "" {
		return nil, initErr(f.Name(), errors.New("key file path is empty"))
	}

	key, err := os.ReadFile(f.path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f.create()
	case err != nil:
		return nil, initErr(f.Name(), err)
	case len(key) != securekv.KeySize:
		return nil, initErr(f.Name(), fmt.Errorf("%s holds %d bytes, want %d", f.path, len(key), securekv.KeySize))
	}

	return key, nil
}

func (f *File) create() ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil { //nolint:mnd
		return nil, initErr(f.Name(), err)
	}

	key, err := randomKey()
	if err != nil {
		return nil, initErr(f.Name(), err)
	}

	fh, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:mnd
	if err != nil {
		return nil, initErr(f.Name(), err)
	}

	if _, err = fh.Write(key); err != nil {
		_ = fh.Close()
		_ = os.Remove(f.path)

		return nil, initErr(f.Name(), err)
	}

	if err = fh.Close(); err != nil {
		return nil, initErr(f.Name(), err)
	}

	log.Info().Str("path", f.path).Msg("created new master key file")

	return key, nil
}
