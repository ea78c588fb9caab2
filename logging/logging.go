// Package logging is the debug output shared by the bigcrypt packages.
//
// Everything the schemes log is at debug level, so nothing is printed unless
// BIGCRYPT_DEBUG is set or SetLevel lowers the threshold.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
)

// DebugEnv is the environment variable that enables debug output.
const DebugEnv = "BIGCRYPT_DEBUG"

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := New(ConsoleWriter(os.Stderr), levelFromEnv())
	logger.Store(&l)
}

// ConsoleWriter returns a human readable zerolog writer.
func ConsoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out}
}

// New builds a timestamped logger at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

func levelFromEnv() zerolog.Level {
	v, ok := os.LookupEnv(DebugEnv)
	if !ok {
		return zerolog.InfoLevel
	}
	if on, err := strconv.ParseBool(v); err == nil {
		if on {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(v); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// Logger returns the package logger.
func Logger() *zerolog.Logger {
	return logger.Load()
}

// SetLogger replaces the package logger. Used by the command line tool and
// by tests that capture output.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// SetLevel changes the level of the current logger.
func SetLevel(level zerolog.Level) {
	l := Logger().Level(level)
	logger.Store(&l)
}

// Debug reports whether debug output is enabled.
func Debug() bool {
	return Logger().GetLevel() <= zerolog.DebugLevel
}

// DPrintf logs a formatted message at debug level.
func DPrintf(format string, a ...interface{}) {
	if !Debug() {
		return
	}
	Logger().Debug().Msg(fmt.Sprintf(format, a...))
}

// Dump pretty prints values for debug transcripts. Returns "" when debug
// output is off so callers can pass it unconditionally.
func Dump(a ...interface{}) string {
	if !Debug() {
		return ""
	}
	return spew.Sdump(a...)
}
