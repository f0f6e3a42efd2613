package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db/controller/kv"
	"github.com/GoSecureSettings/GoSecureSettings/internal/keystore"
	"github.com/GoSecureSettings/GoSecureSettings/internal/securekv"
	"github.com/GoSecureSettings/GoSecureSettings/internal/settings"
)

// Storage is an opened settings namespace.
type Storage struct {
	DB    *gorm.DB
	Store *settings.Store
}

// OpenStorage obtains the master key, connects the database and opens the
// encrypted namespace. Every failure is fatal for the caller: there is no
// fallback to an unencrypted or empty store.
func OpenStorage(cfg *config.Config, opts ...settings.Option) (*Storage, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	source, err := keystore.New(cfg.Encryption)
	if err != nil {
		return nil, err
	}

	key, err := source.MasterKey()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	gdb, err := db.Open(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open settings database: %w", securekv.ErrInitialization, err)
	}

	enc, err := securekv.Open(kv.NewBackend(gdb, cfg.DB.Namespace), key)
	if err != nil {
		_ = db.Close(gdb)

		return nil, errors.Wrapf(err, "failed to open namespace %s", cfg.DB.Namespace)
	}

	entries, err := kv.Count(gdb, cfg.DB.Namespace)
	if err != nil {
		log.Warn().Err(err).Str("namespace", cfg.DB.Namespace).Msg("can't count namespace entries")
	}

	log.Debug().
		Int64("entries", entries).
		Str("engine", cfg.DB.Engine).
		Str("namespace", cfg.DB.Namespace).
		Str("keySource", source.Name()).
		Msg("settings namespace opened")

	return &Storage{DB: gdb, Store: settings.Open(enc, opts...)}, nil
}

// Close releases the database connection.
func (s *Storage) Close() error {
	return db.Close(s.DB)
}
