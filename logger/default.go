package logger

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/handler"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	// Text to stdout, host local zone, millisecond fraction
	defaultLogger.Store(NewBuilder().
		WithHandler(handler.NewConsoleHandler(handler.ConsoleConfig{})).
		WithErrorOutput(os.Stderr).
		Build())
}

// Default returns the logger used by the package-level functions.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the default logger. A nil l is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// The package-level functions call log directly, keeping the caller skip
// identical to the Logger methods.

func Debug(msg string, fields ...core.Field) { Default().log(core.DebugLevel, msg, nil, fields) }
func Info(msg string, fields ...core.Field)  { Default().log(core.InfoLevel, msg, nil, fields) }
func Warn(msg string, fields ...core.Field)  { Default().log(core.WarnLevel, msg, nil, fields) }
func Error(msg string, fields ...core.Field) { Default().log(core.ErrorLevel, msg, nil, fields) }

func Debugf(format string, args ...interface{}) { Default().log(core.DebugLevel, format, args, nil) }
func Infof(format string, args ...interface{})  { Default().log(core.InfoLevel, format, args, nil) }
func Warnf(format string, args ...interface{})  { Default().log(core.WarnLevel, format, args, nil) }
func Errorf(format string, args ...interface{}) { Default().log(core.ErrorLevel, format, args, nil) }

// Fatal logs with the default logger and exits with status 1.
func Fatal(msg string, fields ...core.Field) {
	Default().log(core.FatalLevel, msg, nil, fields)
	osExit(1)
}

// Panic logs with the default logger and panics with msg.
func Panic(msg string, fields ...core.Field) {
	Default().log(core.PanicLevel, msg, nil, fields)
	panic(msg)
}

func Fatalf(format string, args ...interface{}) {
	Default().log(core.FatalLevel, format, args, nil)
	osExit(1)
}

func Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	Default().log(core.PanicLevel, msg, nil, nil)
	panic(msg)
}

// With returns a child of the default logger carrying fields.
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Named returns a child of the default logger with name appended.
func Named(name string) *Logger {
	return Default().Named(name)
}
