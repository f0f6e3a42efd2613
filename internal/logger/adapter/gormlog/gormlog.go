// Package gormlog routes gorm's logger into the global zerolog logger.
package gormlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks queries slower than this as warnings.
const DefaultSlowThreshold = 200 * time.Millisecond

// Adapter implements gorm's logger.Interface on top of zerolog.
type Adapter struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	logger        func() *zerolog.Logger
}

// New returns an adapter logging warnings and errors.
func New() *Adapter {
	return &Adapter{
		level:         gormlogger.Warn,
		slowThreshold: DefaultSlowThreshold,
		logger:        func() *zerolog.Logger { return &log.Logger },
	}
}

// WithLogger uses l instead of the global logger.
func (a *Adapter) WithLogger(l zerolog.Logger) *Adapter {
	out := *a
	out.logger = func() *zerolog.Logger { return &l }

	return &out
}

// LogMode implements logger.Interface.
func (a *Adapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	out := *a
	out.level = level

	return &out
}

// Info implements logger.Interface.
func (a *Adapter) Info(_ context.Context, msg string, data ...any) {
	if a.level >= gormlogger.Info {
		a.logger().Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn implements logger.Interface.
func (a *Adapter) Warn(_ context.Context, msg string, data ...any) {
	if a.level >= gormlogger.Warn {
		a.logger().Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Error implements logger.Interface.
func (a *Adapter) Error(_ context.Context, msg string, data ...any) {
	if a.level >= gormlogger.Error {
		a.logger().Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace implements logger.Interface. Statements are only rendered at trace level,
// the bound values are ciphertext and not worth printing otherwise.
func (a *Adapter) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	l := a.logger()

	switch {
	case err != nil && a.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.Error().Err(err).Str("component", "gorm").Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case a.slowThreshold != 0 && elapsed > a.slowThreshold && a.level >= gormlogger.Warn:
		_, rows := fc()
		l.Warn().Str("component", "gorm").Dur("elapsed", elapsed).Int64("rows", rows).Msg("slow query")
	case a.level >= gormlogger.Info && l.GetLevel() <= zerolog.TraceLevel:
		sql, rows := fc()
		l.Trace().Str("component", "gorm").Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
