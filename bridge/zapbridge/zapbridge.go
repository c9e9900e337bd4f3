// Package zapbridge connects go.uber.org/zap to preciselog.
//
// TimeEncoder plugs the precise timestamp into zap's own encoders.
// NewCore goes the other way and lets a *zap.Logger emit through a
// handler.Handler, so zap call sites produce the same records as
// logger.Logger.
package zapbridge

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/handler"
	"github.com/philipp01105/preciselog/timestamp"
)

// TimeEncoder returns a zapcore.TimeEncoder that renders with r.
func TimeEncoder(r *timestamp.Renderer) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(r.Format(t))
	}
}

// NewEncoderConfig returns zap's production encoder config with the
// time key and encoder replaced.
func NewEncoderConfig(r *timestamp.Renderer) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = TimeEncoder(r)
	return cfg
}

// Core is a zapcore.Core that forwards entries to a handler.Handler
type Core struct {
	zapcore.LevelEnabler
	handler handler.Handler
	fields  []zapcore.Field
}

// NewCore creates a Core writing to h for every level enabled by enab
func NewCore(h handler.Handler, enab zapcore.LevelEnabler) *Core {
	return &Core{LevelEnabler: enab, handler: h}
}

// NewLogger is shorthand for zap.New(NewCore(h, enab), opts...)
func NewLogger(h handler.Handler, enab zapcore.LevelEnabler, opts ...zap.Option) *zap.Logger {
	return zap.New(NewCore(h, enab), opts...)
}

// With returns a child Core carrying fields
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check adds c to ce when the entry's level is enabled
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the zap entry and hands it to the handler
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	entry.Time = ent.Time
	entry.Level = levelToCore(ent.Level)
	entry.LoggerName = ent.LoggerName
	entry.Message = ent.Message
	if ent.Caller.Defined {
		entry.Caller = core.CallerInfo{
			File:      ent.Caller.File,
			ShortFile: filepath.Base(ent.Caller.File),
			Line:      ent.Caller.Line,
			Function:  ent.Caller.Function,
			Defined:   true,
		}
	}

	all := fields
	if len(c.fields) > 0 {
		all = make([]zapcore.Field, 0, len(c.fields)+len(fields))
		all = append(all, c.fields...)
		all = append(all, fields...)
	}
	entry.Fields = convertFields(entry.Fields, all)
	if ent.Stack != "" {
		entry.Fields = append(entry.Fields, core.Field{Key: "stacktrace", Type: core.StringType, Str: ent.Stack})
	}

	err := c.handler.Handle(entry)
	core.PutEntry(entry)
	return err
}

// Sync is a no-op; handlers write synchronously
func (c *Core) Sync() error {
	return nil
}

func levelToCore(l zapcore.Level) core.Level {
	switch {
	case l < zapcore.InfoLevel:
		return core.DebugLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	case l == zapcore.PanicLevel:
		return core.PanicLevel
	case l == zapcore.FatalLevel:
		return core.FatalLevel
	default:
		// ErrorLevel and DPanicLevel
		return core.ErrorLevel
	}
}

// convertFields appends the core form of fields to dst. A namespace
// field nests every field after it.
func convertFields(dst []core.Field, fields []zapcore.Field) []core.Field {
	for i, f := range fields {
		if f.Type == zapcore.NamespaceType {
			group := convertFields(nil, fields[i+1:])
			return append(dst, core.Field{Key: f.Key, Type: core.GroupType, Group: group})
		}
		if cf, ok := convertField(f); ok {
			dst = append(dst, cf)
		}
	}
	return dst
}

func convertField(f zapcore.Field) (core.Field, bool) {
	switch f.Type {
	case zapcore.SkipType:
		return core.Field{}, false
	case zapcore.StringType:
		return core.Field{Key: f.Key, Type: core.StringType, Str: f.String}, true
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return core.Field{Key: f.Key, Type: core.Int64Type, Int64: f.Integer}, true
	case zapcore.BoolType:
		return core.Field{Key: f.Key, Type: core.BoolType, Int64: f.Integer}, true
	case zapcore.Float64Type:
		return core.Field{Key: f.Key, Type: core.Float64Type, Float64: math.Float64frombits(uint64(f.Integer))}, true
	case zapcore.Float32Type:
		return core.Field{Key: f.Key, Type: core.Float64Type, Float64: float64(math.Float32frombits(uint32(f.Integer)))}, true
	case zapcore.DurationType:
		return core.Field{Key: f.Key, Type: core.DurationType, Int64: f.Integer}, true
	case zapcore.TimeType:
		// Integer already holds Unix nanoseconds; the renderer applies its own zone
		return core.Field{Key: f.Key, Type: core.TimeType, Int64: f.Integer}, true
	case zapcore.TimeFullType:
		t, _ := f.Interface.(time.Time)
		return core.Field{Key: f.Key, Type: core.TimeType, Int64: t.UnixNano()}, true
	case zapcore.ErrorType:
		err, _ := f.Interface.(error)
		if err == nil {
			return core.Field{Key: f.Key, Type: core.NullType}, true
		}
		return core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error()}, true
	case zapcore.StringerType:
		return core.Field{Key: f.Key, Type: core.StringType, Str: stringerValue(f.Interface)}, true
	}

	// Everything else goes through zap's own reflection
	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	v, ok := enc.Fields[f.Key]
	if !ok {
		return core.Field{}, false
	}
	if v == nil {
		return core.Field{Key: f.Key, Type: core.NullType}, true
	}
	return core.Field{Key: f.Key, Type: core.AnyType, Any: v}, true
}

func stringerValue(v interface{}) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<PANIC=%v>", r)
		}
	}()
	if sv, ok := v.(fmt.Stringer); ok && sv != nil {
		return sv.String()
	}
	return fmt.Sprint(v)
}
