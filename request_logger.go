package client

import (
	"strings"

	"github.com/rs/zerolog"
)

// RequestLogger receives the client's request failures and, when
// [Config.Verbose] is set, resty's request and response dumps at debug level.
// The method set matches resty.Logger so the value is handed to resty as is.
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger discards everything. It is the default when [WithRequestLogger]
// is not used.
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}

// ZerologLogger adapts a zerolog.Logger to [RequestLogger].
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger returns a [RequestLogger] writing to logger with a
// component=api-client field.
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger.With().Str("component", "api-client").Logger()}
}

func (l *ZerologLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(trimNewline(format), v...)
}

func (l *ZerologLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(trimNewline(format), v...)
}

func (l *ZerologLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(trimNewline(format), v...)
}

// resty terminates its debug dumps with a newline; zerolog adds its own.
func trimNewline(format string) string {
	return strings.TrimRight(format, "\n")
}
