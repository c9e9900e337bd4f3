package handler

import (
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/preciselog/core"
)

// SlogHandler is an adapter that implements slog.Handler using a Handler.
// This allows the formatters of this module to render log/slog records.
// Groups become nested GroupType fields.
type SlogHandler struct {
	handler Handler
	level   core.Level
	name    string
	groups  []string
	// attrs[0] holds top-level attrs, attrs[i] the attrs inside groups[i-1].
	attrs [][]core.Field
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h Handler, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
		attrs:   [][]core.Field{nil},
	}
}

// WithLoggerName returns a copy of s that stamps name on every entry.
func (s *SlogHandler) WithLoggerName(name string) *SlogHandler {
	c := *s
	c.name = name
	return &c
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record into a core.Entry and passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = record.Time
	entry.Level = slogLevelToCore(record.Level)
	entry.LoggerName = s.name
	entry.Message = record.Message
	if record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := frames.Next()
		entry.Caller = core.CallerInfo{
			File:      f.File,
			ShortFile: filepath.Base(f.File),
			Line:      f.Line,
			Function:  f.Function,
			Defined:   f.File != "",
		}
	}

	var recordFields []core.Field
	record.Attrs(func(a slog.Attr) bool {
		recordFields = appendSlogAttr(recordFields, a)
		return true
	})

	// Nest record attrs inside the open groups, innermost first.
	inner := append(cloneFields(s.attrs[len(s.groups)]), recordFields...)
	for i := len(s.groups); i > 0; i-- {
		outer := cloneFields(s.attrs[i-1])
		if len(inner) > 0 {
			outer = append(outer, core.Field{Key: s.groups[i-1], Type: core.GroupType, Group: inner})
		}
		inner = outer
	}
	entry.Fields = append(entry.Fields, inner...)

	return s.handler.Handle(entry)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	c := s.clone()
	last := len(c.attrs) - 1
	for _, a := range attrs {
		c.attrs[last] = appendSlogAttr(c.attrs[last], a)
	}
	return c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := s.clone()
	c.groups = append(c.groups, name)
	c.attrs = append(c.attrs, nil)
	return c
}

func (s *SlogHandler) clone() *SlogHandler {
	c := *s
	c.groups = append([]string(nil), s.groups...)
	c.attrs = make([][]core.Field, len(s.attrs))
	for i, level := range s.attrs {
		c.attrs[i] = cloneFields(level)
	}
	return &c
}

func cloneFields(fields []core.Field) []core.Field {
	if len(fields) == 0 {
		return nil
	}
	return append([]core.Field(nil), fields...)
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendSlogAttr converts a and appends it to dst. Empty attrs are
// dropped and groups with an empty key are inlined, as slog requires.
func appendSlogAttr(dst []core.Field, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		if u := a.Value.Uint64(); u <= math.MaxInt64 {
			return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: int64(u)})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(dst, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(dst, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		var group []core.Field
		for _, ga := range a.Value.Group() {
			group = appendSlogAttr(group, ga)
		}
		if len(group) == 0 {
			return dst
		}
		if key == "" {
			return append(dst, group...)
		}
		return append(dst, core.Field{Key: key, Type: core.GroupType, Group: group})
	default:
		v := a.Value.Any()
		if v == nil {
			return append(dst, core.Field{Key: key, Type: core.NullType})
		}
		if err, ok := v.(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: v})
	}
}
