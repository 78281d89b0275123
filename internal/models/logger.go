package models

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a statement is logged as a warning.
const slowQuery = 200 * time.Millisecond

// statementTable finds the table a statement reads from or writes to.
var statementTable = regexp.MustCompile("(?i)\\b(?:FROM|INTO|UPDATE)\\s+[`\"]?(\\w+)")

// logger writes gorm statements to zerolog, tagged with the resource they
// work on.
type logger struct {
	Logger zerolog.Logger
	Slow   time.Duration
}

func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.Logger.Debug()
	msg := "[GORM] query"
	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound):
		event = l.Logger.Error().Err(err)
		msg = "[GORM] query error"
	case l.Slow > 0 && elapsed > l.Slow:
		event = l.Logger.Warn()
		msg = "[GORM] slow query"
	}

	if m := statementTable.FindStringSubmatch(sql); m != nil {
		event = event.Str("resource", resourceName(m[1]))
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg(msg)
}
