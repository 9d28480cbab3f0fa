// Package xlog wraps zerolog for the library's own internal
// diagnostics. Nothing in the core parsing path requires a logger:
// the zero value discards everything, so importing packages never pay
// for logging they didn't ask for.
package xlog

import (
	"io"

	"github.com/rs/zerolog"
)

var nop = zerolog.Nop()

// Logger is a thin handle around zerolog.Logger. The zero value holds
// a nil *zerolog.Logger and is valid: every method falls back to a
// package-level Nop logger instead of dereferencing it.
type Logger struct {
	z *zerolog.Logger
}

// New builds a Logger writing to w at the given minimum level. Pass
// io.Discard for tests that don't care about log output.
func New(w io.Writer, level zerolog.Level) Logger {
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return Logger{z: &l}
}

func (l Logger) logger() *zerolog.Logger {
	if l.z == nil {
		return &nop
	}
	return l.z
}

func (l Logger) Debug() *zerolog.Event { return l.logger().Debug() }
func (l Logger) Trace() *zerolog.Event { return l.logger().Trace() }
func (l Logger) Warn() *zerolog.Event  { return l.logger().Warn() }

// With returns a child logger with the given field attached to every
// message it writes.
func (l Logger) With(key string, value any) Logger {
	child := l.logger().With().Interface(key, value).Logger()
	return Logger{z: &child}
}
