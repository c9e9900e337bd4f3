package logger

import "github.com/philipp01105/preciselog/core"

// Level is core.Level, re-exported so callers need only this package.
type Level = core.Level

const (
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
	PanicLevel = core.PanicLevel
)

// ParseLevel is core.ParseLevel without the error: unknown names yield
// InfoLevel. Use core.ParseLevel to reject them instead.
func ParseLevel(s string) Level {
	l, _ := core.ParseLevel(s)
	return l
}
