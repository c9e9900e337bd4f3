package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
	NullType
	// GroupType holds nested fields in Group, rendered as an object.
	GroupType
	// RawJSONType holds an already encoded JSON value in Str.
	RawJSONType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
	Group   []Field
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339Nano)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType, RawJSONType:
		return f.Str
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	case NullType:
		return "null"
	case GroupType:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, g := range f.Group {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.Key)
			sb.WriteByte('=')
			sb.WriteString(g.StringValue())
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return ""
	}
}

// FieldOf builds a Field for an arbitrary value, picking the typed
// representation when one exists and falling back to AnyType.
func FieldOf(key string, v interface{}) Field {
	switch val := v.(type) {
	case nil:
		return Field{Key: key, Type: NullType}
	case string:
		return Field{Key: key, Type: StringType, Str: val}
	case int:
		return Field{Key: key, Type: IntType, Int64: int64(val)}
	case int8:
		return Field{Key: key, Type: Int64Type, Int64: int64(val)}
	case int16:
		return Field{Key: key, Type: Int64Type, Int64: int64(val)}
	case int32:
		return Field{Key: key, Type: Int64Type, Int64: int64(val)}
	case int64:
		return Field{Key: key, Type: Int64Type, Int64: val}
	case float32:
		return Field{Key: key, Type: Float64Type, Float64: float64(val)}
	case float64:
		return Field{Key: key, Type: Float64Type, Float64: val}
	case bool:
		f := Field{Key: key, Type: BoolType}
		if val {
			f.Int64 = 1
		}
		return f
	case time.Time:
		return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return Field{Key: key, Type: DurationType, Int64: int64(val)}
	case error:
		return Field{Key: key, Type: ErrorType, Str: val.Error()}
	default:
		return Field{Key: key, Type: AnyType, Any: v}
	}
}
