package formatter

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"
	"github.com/valyala/fastjson"

	"github.com/philipp01105/preciselog/core"
)

// rawParsers validates and compacts RawJSONType values.
var rawParsers fastjson.ParserPool

// appendJSONString writes a JSON-escaped string (without surrounding quotes)
// to the buffer. Invalid UTF-8 bytes are replaced with \ufffd.
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				buf.WriteString(s[start:i])
				buf.WriteString(`\ufffd`)
				start = i + 1
			}
			i += size
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}
		// Flush unescaped prefix
		buf.WriteString(s[start:i])
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		i++
		start = i
	}
	// Flush remaining
	buf.WriteString(s[start:])
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

func appendQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	appendJSONString(buf, s)
	buf.WriteByte('"')
}

// appendJSONFieldValue writes a JSON-encoded field value to the buffer.
// Values without a JSON form are written as their string representation.
func (f *JSONFormatter) appendJSONFieldValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.StringType, core.ErrorType:
		appendQuoted(buf, field.Str)
	case core.IntType, core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		if math.IsNaN(field.Float64) || math.IsInf(field.Float64, 0) {
			appendQuoted(buf, field.StringValue())
			return
		}
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(f.renderer.AppendFormat(buf.AvailableBuffer(), time.Unix(0, field.Int64)))
		buf.WriteByte('"')
	case core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.NullType:
		buf.WriteString("null")
	case core.GroupType:
		buf.WriteByte('{')
		for i, g := range field.Group {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendQuoted(buf, g.Key)
			buf.WriteByte(':')
			f.appendJSONFieldValue(buf, g)
		}
		buf.WriteByte('}')
	case core.RawJSONType:
		appendRawJSON(buf, field.Str)
	case core.AnyType:
		if t, ok := field.Any.(time.Time); ok {
			buf.WriteByte('"')
			buf.Write(f.renderer.AppendFormat(buf.AvailableBuffer(), t))
			buf.WriteByte('"')
			return
		}
		appendAny(buf, field.Any)
	default:
		appendQuoted(buf, field.StringValue())
	}
}

// appendRawJSON splices pre-encoded JSON in compact form, or quotes it as
// a string when it does not parse.
func appendRawJSON(buf *bytes.Buffer, raw string) {
	p := rawParsers.Get()
	v, err := p.Parse(raw)
	if err != nil {
		rawParsers.Put(p)
		appendQuoted(buf, raw)
		return
	}
	buf.Write(v.MarshalTo(buf.AvailableBuffer()))
	rawParsers.Put(p)
}

// appendAny encodes an arbitrary Go value. Errors are written as their
// message; anything the encoder rejects falls back to fmt's %v form.
func appendAny(buf *bytes.Buffer, v interface{}) {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return
	case error:
		appendQuoted(buf, val.Error())
		return
	case fmt.Stringer:
		if _, ok := v.(gojson.Marshaler); !ok {
			appendQuoted(buf, val.String())
			return
		}
	}

	data, err := encodeValue(v)
	if err != nil {
		appendQuoted(buf, fmt.Sprintf("%v", v))
		return
	}
	buf.Write(data)
}

// encodeValue marshals v to compact JSON, reporting core.ErrUnencodableValue
// for values the encoder cannot represent.
func encodeValue(v interface{}) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %T: %v", core.ErrUnencodableValue, v, r)
		}
	}()
	data, err = gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %v", core.ErrUnencodableValue, v, err)
	}
	return data, nil
}
