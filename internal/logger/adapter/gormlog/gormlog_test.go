package gormlog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoSecureSettings/GoSecureSettings/internal/logger/adapter/gormlog"
)

func TestAdapter(t *testing.T) {
	sqlFunc := func() (string, int64) { return "SELECT 1", 1 }

	testCases := []struct {
		name     string
		level    gormlogger.LogLevel
		log      func(a gormlogger.Interface)
		contains string
	}{
		{
			name:  "silent drops errors",
			level: gormlogger.Silent,
			log: func(a gormlogger.Interface) {
				a.Trace(context.Background(), time.Now(), sqlFunc, errors.New("disk full"))
			},
		},
		{
			name:  "error is logged with the statement",
			level: gormlogger.Error,
			log: func(a gormlogger.Interface) {
				a.Trace(context.Background(), time.Now(), sqlFunc, errors.New("disk full"))
			},
			contains: "disk full",
		},
		{
			name:  "record not found is not an error",
			level: gormlogger.Error,
			log: func(a gormlogger.Interface) {
				a.Trace(context.Background(), time.Now(), sqlFunc, gormlogger.ErrRecordNotFound)
			},
		},
		{
			name:  "slow query is a warning",
			level: gormlogger.Warn,
			log: func(a gormlogger.Interface) {
				a.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc, nil)
			},
			contains: "slow query",
		},
		{
			name:  "info respects the level",
			level: gormlogger.Warn,
			log: func(a gormlogger.Interface) {
				a.Info(context.Background(), "migrated %d tables", 1)
			},
		},
		{
			name:  "warn is formatted",
			level: gormlogger.Warn,
			log: func(a gormlogger.Interface) {
				a.Warn(context.Background(), "pool %s", "exhausted")
			},
			contains: "pool exhausted",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			a := gormlog.New().WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)).LogMode(tc.level)
			tc.log(a)

			if tc.contains == "" {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), tc.contains)
			assert.Contains(t, buf.String(), `"component":"gorm"`)
		})
	}
}
