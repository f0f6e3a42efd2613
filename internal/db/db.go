// Package db opens the gorm connection backing the encrypted namespace.
package db

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db/dsn"
	"github.com/GoSecureSettings/GoSecureSettings/internal/db/models"
	"github.com/GoSecureSettings/GoSecureSettings/internal/logger/adapter/gormlog"
)

// Open connects to the configured engine and migrates the schema.
func Open(cfg *config.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Engine {
	case config.EngineMySQL:
		dialector = mysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	case config.EngineSQLite, "":
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o700); err != nil { //nolint:mnd
				return nil, errors.Wrap(err, "create database directory")
			}
		}

		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, config.ErrUnknownDBEngine
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormlog.New()})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if cfg.Engine == config.EngineSQLite || cfg.Engine == "" {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, errors.Wrap(err, "get sql db")
		}

		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	if err := gdb.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, errors.Wrap(err, "migrate database")
	}

	return gdb, nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}

	return sqlDB.Close() //nolint:wrapcheck
}
