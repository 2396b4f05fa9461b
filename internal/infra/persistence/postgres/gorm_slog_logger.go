package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "numatu/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogOptions tunes the statement logger shared by the SQL stores.
type GormLogOptions struct {
	// Driver tags every record, e.g. "postgres" or "sqlite".
	Driver string
	// Debug logs every statement instead of only slow and failed ones.
	Debug bool
	// SlowThreshold marks a statement as slow. Zero disables slow-query warnings.
	SlowThreshold time.Duration
}

type gormSlogLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	driver        string
	slowThreshold time.Duration
}

// NewGormLogger routes GORM logs to the request-scoped slog logger when one is bound to
// the statement context, falling back to base.
func NewGormLogger(base *slog.Logger, opts GormLogOptions) logger.Interface {
	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	if base == nil {
		level = logger.Silent
	}

	return &gormSlogLogger{
		base:          base,
		level:         level,
		driver:        opts.Driver,
		slowThreshold: opts.SlowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) message(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < min {
		return
	}

	l.log(ctx).LogAttrs(ctx, level, "Store message", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed statements, then slow ones, then (debug only) everything else.
// A missing collection is an expected outcome and is never logged as a failure.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRows func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		level slog.Level
		msg   string
		extra slog.Attr
	)
	switch {
	case failed && l.level >= logger.Error:
		level, msg, extra = slog.LevelError, "Store statement failed", slog.String("error", err.Error())
	case slow && l.level >= logger.Warn:
		level, msg, extra = slog.LevelWarn, "Store statement slow", slog.Duration("slowThreshold", l.slowThreshold)
	case l.level >= logger.Info:
		level, msg = slog.LevelDebug, "Store statement"
	default:
		return
	}

	sql, rows := sqlAndRows()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}

	l.log(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormSlogLogger) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.base).With(slog.String("store", l.driver))
}
