package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/formatter"
	"github.com/philipp01105/preciselog/handler"
)

// osExit is swapped out by tests of Fatal
var osExit = os.Exit

// defaultCallerSkip skips GetCaller, log and the public method.
const defaultCallerSkip = 3

// Logger is immutable once built: With and Named return copies, so a
// Logger can be shared between goroutines without locking.
type Logger struct {
	handler       handler.Handler
	level         core.Level
	name          string
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	errorOutput   io.Writer
}

// Builder assembles a Logger. A Builder is not safe for concurrent use.
type Builder struct {
	l Logger
}

// NewBuilder starts a Logger at InfoLevel with no handler.
func NewBuilder() *Builder {
	return &Builder{l: Logger{level: core.InfoLevel, callerSkip: defaultCallerSkip}}
}

// New builds a Logger that formats with cfg and writes to w.
// Configuration errors are returned before any Logger exists.
func New(w io.Writer, cfg formatter.Config) (*Logger, error) {
	f, err := formatter.New(cfg)
	if err != nil {
		return nil, err
	}
	h := handler.NewConsoleHandler(handler.ConsoleConfig{Writer: w, Formatter: f})
	return NewBuilder().
		WithHandler(h).
		WithCaller(cfg.IncludeCaller).
		Build(), nil
}

// WithHandler sets the handler every enabled entry is passed to.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.l.handler = h
	return b
}

// WithErrorOutput sets where handler failures are reported. Without it
// a failed Handle call is dropped.
func (b *Builder) WithErrorOutput(w io.Writer) *Builder {
	b.l.errorOutput = w
	return b
}

// WithLevel sets the minimum level that reaches the handler.
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.l.level = level
	return b
}

// WithName sets the logger name stamped on every entry.
func (b *Builder) WithName(name string) *Builder {
	b.l.name = name
	return b
}

// WithFields appends fields attached to every entry.
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.l.fields = append(b.l.fields, fields...)
	return b
}

// WithCaller records the call site of each entry. It costs one
// runtime.Caller per logged entry.
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.l.includeCaller = enabled
	return b
}

// Build returns the Logger. The Builder may be reused afterwards.
func (b *Builder) Build() *Logger {
	l := b.l
	l.fields = append([]core.Field(nil), b.l.fields...)
	return &l
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := *l
	c.fields = newFields
	return &c
}

// Named creates a new Logger with the given name (immutable operation).
// A non-empty parent name is joined with a dot.
func (l *Logger) Named(name string) *Logger {
	c := *l
	if l.name != "" && name != "" {
		c.name = l.name + "." + name
	} else if name != "" {
		c.name = name
	}
	return &c
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Enabled reports whether entries at level are emitted
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	l.log(level, msg, nil, fields)
}

// Logf logs a fmt-style message at the specified level
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	l.log(level, format, args, nil)
}

// log builds and hands off one entry. Every public method calls it
// directly so that callerSkip is the same for all of them.
func (l *Logger) log(level core.Level, msg string, args []interface{}, fields []core.Field) {
	// Filtered entries cost one comparison and no allocation
	if level < l.level || l.handler == nil {
		return
	}

	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.LoggerName = l.name
	entry.Message = msg
	entry.Args = args
	entry.Fields = append(entry.Fields, l.fields...)
	entry.Fields = append(entry.Fields, fields...)
	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	// Handlers consume entries synchronously, so the entry can be recycled
	if err := l.handler.Handle(entry); err != nil && l.errorOutput != nil {
		fmt.Fprintf(l.errorOutput, "%s preciselog: handler error: %v\n", time.Now().UTC().Format(time.RFC3339), err)
	}
	core.PutEntry(entry)
}

func (l *Logger) Debug(msg string, fields ...core.Field) { l.log(core.DebugLevel, msg, nil, fields) }
func (l *Logger) Info(msg string, fields ...core.Field)  { l.log(core.InfoLevel, msg, nil, fields) }
func (l *Logger) Warn(msg string, fields ...core.Field)  { l.log(core.WarnLevel, msg, nil, fields) }
func (l *Logger) Error(msg string, fields ...core.Field) { l.log(core.ErrorLevel, msg, nil, fields) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(core.DebugLevel, format, args, nil) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(core.InfoLevel, format, args, nil) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(core.WarnLevel, format, args, nil) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(core.ErrorLevel, format, args, nil) }

// Fatal logs at FatalLevel and exits with status 1. The exit happens
// even when FatalLevel is filtered out.
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.FatalLevel, msg, nil, fields)
	osExit(1)
}

// Fatalf is the fmt-style form of Fatal.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, format, args, nil)
	osExit(1)
}

// Panic logs at PanicLevel and panics with msg.
func (l *Logger) Panic(msg string, fields ...core.Field) {
	l.log(core.PanicLevel, msg, nil, fields)
	panic(msg)
}

// Panicf is the fmt-style form of Panic; the panic value is the formatted message.
func (l *Logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log(core.PanicLevel, msg, nil, nil)
	panic(msg)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
