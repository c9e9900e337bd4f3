package logger

import (
	"fmt"
	"math"
	"time"

	"github.com/philipp01105/preciselog/core"
)

// Field constructors. Each returns a core.Field with its type tag set,
// so formatters never need reflection for these kinds.

func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Uint64 stores values above math.MaxInt64 as AnyType so they keep
// their exact decimal form.
func Uint64(key string, val uint64) core.Field {
	if val > math.MaxInt64 {
		return core.Field{Key: key, Type: core.AnyType, Any: val}
	}
	return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
}

// Float64 fields holding NaN or ±Inf are written as strings in JSON.
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

func Bool(key string, val bool) core.Field {
	var b int64
	if val {
		b = 1
	}
	return core.Field{Key: key, Type: core.BoolType, Int64: b}
}

// Time values are rendered with the formatter's precision and zone,
// not their own location.
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration is written as integer nanoseconds in JSON and as
// time.Duration.String in text.
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err stores err's message under the "error" key. A nil err gives an
// empty message.
func Err(err error) core.Field {
	return NamedErr("error", err)
}

// NamedErr is Err with a caller-chosen key.
func NamedErr(key string, err error) core.Field {
	f := core.Field{Key: key, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Stringer calls val.String at log time.
func Stringer(key string, val fmt.Stringer) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val.String()}
}

// Any picks a typed representation for common kinds and falls back to
// JSON encoding of val.
func Any(key string, val interface{}) core.Field {
	return core.FieldOf(key, val)
}

// Null creates a field whose value is JSON null
func Null(key string) core.Field {
	return core.Field{Key: key, Type: core.NullType}
}

// Group nests fields under key: an object in JSON, {k=v ...} in text.
func Group(key string, fields ...core.Field) core.Field {
	return core.Field{Key: key, Type: core.GroupType, Group: fields}
}

// RawJSON creates a field from already encoded JSON. Invalid JSON is
// emitted as a string by the JSON formatter.
func RawJSON(key, json string) core.Field {
	return core.Field{Key: key, Type: core.RawJSONType, Str: json}
}
