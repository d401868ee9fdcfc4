package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

var _ gormlogger.Interface = (*GormLogger)(nil)

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)
	changed, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, changed.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	selectSQL := func() (string, int64) { return "SELECT * FROM inventory_records", 3 }
	staleUpdate := func() (string, int64) {
		return `UPDATE "inventory_records" SET "quantity"=4,"version"=3 WHERE id = 'a' AND "version" = 2`, 0
	}
	plainUpdate := func() (string, int64) { return `UPDATE "locations" SET "used_volume"=0 WHERE tenant_id = 't'`, 0 }

	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		begin     time.Time
		sql       func() (string, int64)
		err       error
		wantMsg   string
		wantLevel zapcore.Level
		wantNone  bool
	}{
		{name: "error", level: gormlogger.Info, begin: time.Now(), sql: selectSQL, err: errors.New("boom"), wantMsg: "SQL error", wantLevel: zapcore.ErrorLevel},
		{name: "record not found ignored", level: gormlogger.Info, begin: time.Now(), sql: selectSQL, err: gormlogger.ErrRecordNotFound, wantNone: true},
		{name: "slow query", level: gormlogger.Warn, begin: time.Now().Add(-time.Second), sql: selectSQL, wantMsg: "Slow SQL", wantLevel: zapcore.WarnLevel},
		{name: "stale versioned update", level: gormlogger.Warn, begin: time.Now(), sql: staleUpdate, wantMsg: "Optimistic lock conflict", wantLevel: zapcore.WarnLevel},
		{name: "unversioned update touching nothing", level: gormlogger.Info, begin: time.Now(), sql: plainUpdate, wantMsg: "SQL", wantLevel: zapcore.DebugLevel},
		{name: "normal query", level: gormlogger.Info, begin: time.Now(), sql: selectSQL, wantMsg: "SQL", wantLevel: zapcore.DebugLevel},
		{name: "normal query below info", level: gormlogger.Warn, begin: time.Now(), sql: selectSQL, wantNone: true},
		{name: "silent", level: gormlogger.Silent, begin: time.Now(), sql: selectSQL, err: errors.New("boom"), wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level)

			gl.Trace(context.Background(), tt.begin, tt.sql, tt.err)

			if tt.wantNone {
				assert.Empty(t, recorded.All())
				return
			}
			entries := recorded.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
		})
	}
}

func TestGormLogger_Trace_ContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info, WithSlowThreshold(0))

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
	ctx, _ = WithTenantID(ctx, zap.NewNop(), "tenant-9")
	gl.Trace(ctx, time.Now(), func() (string, int64) { return "select 1", 1 }, nil)

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "tenant-9", fields["tenant_id"])
	assert.Equal(t, "SELECT", fields["op"])
}

func TestGormLogger_SQLTruncation(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", 2000)
	fn := func() (string, int64) { return long, 1 }

	core, recorded := observer.New(zapcore.DebugLevel)
	NewGormLogger(zap.New(core), gormlogger.Info).Trace(context.Background(), time.Now(), fn, nil)
	logged := recorded.TakeAll()[0].ContextMap()["sql"].(string)
	assert.Len(t, logged, defaultMaxSQLLength+len("..."))

	NewGormLogger(zap.New(core), gormlogger.Info, WithFullSQL(true)).Trace(context.Background(), time.Now(), fn, nil)
	assert.Equal(t, long, recorded.TakeAll()[0].ContextMap()["sql"])
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("other"))
}
