package server

import (
	"github.com/rs/zerolog"

	"github.com/bloodcare/bloodcare/auth"
)

// zeroLogger adapts zerolog to the printf-style logging contract the auth
// core and middleware expect.
type zeroLogger struct {
	log zerolog.Logger
}

var _ auth.Logger = (*zeroLogger)(nil)

func NewLogger(log zerolog.Logger) auth.Logger {
	return &zeroLogger{log: log}
}

func (l *zeroLogger) Debug(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zeroLogger) Info(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zeroLogger) Warn(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zeroLogger) Error(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
