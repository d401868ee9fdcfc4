package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/retail-inventory/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db and marks slow or failed
// statements on the current span. SQL variables are only recorded when
// DBLogFullSQL is set.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, driver string, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem(driver))}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	hook := &slowQueryHook{threshold: thresh, logger: logger}
	if err := hook.register(db); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}

func dbSystem(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}

type slowQueryHook struct {
	threshold time.Duration
	logger    *zap.Logger
}

// register hooks every statement kind; gorm exposes no way to range over them
func (h *slowQueryHook) register(db *gorm.DB) error {
	cb := db.Callback()
	steps := []error{
		cb.Create().Before("gorm:create").Register("slow_query:before_create", h.before),
		cb.Query().Before("gorm:query").Register("slow_query:before_query", h.before),
		cb.Update().Before("gorm:update").Register("slow_query:before_update", h.before),
		cb.Delete().Before("gorm:delete").Register("slow_query:before_delete", h.before),
		cb.Row().Before("gorm:row").Register("slow_query:before_row", h.before),
		cb.Raw().Before("gorm:raw").Register("slow_query:before_raw", h.before),
		cb.Create().After("gorm:create").Register("slow_query:after_create", h.after),
		cb.Query().After("gorm:query").Register("slow_query:after_query", h.after),
		cb.Update().After("gorm:update").Register("slow_query:after_update", h.after),
		cb.Delete().After("gorm:delete").Register("slow_query:after_delete", h.after),
		cb.Row().After("gorm:row").Register("slow_query:after_row", h.after),
		cb.Raw().After("gorm:raw").Register("slow_query:after_raw", h.after),
	}
	return errors.Join(steps...)
}

func (h *slowQueryHook) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (h *slowQueryHook) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	span := trace.SpanFromContext(ctx)

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) && span.IsRecording() {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if elapsed <= h.threshold {
		return
	}
	h.logger.Warn("Slow query",
		zap.String("table", db.Statement.Table),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows_affected", db.Statement.RowsAffected),
	)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
