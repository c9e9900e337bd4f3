package formatter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/philipp01105/preciselog/core"
)

// standardFields is the JSON layout used when Config.MessageFormat is empty.
var standardFields = []string{FieldTimestamp, FieldLevel, FieldLogger, FieldMessage, FieldCaller}

// DefaultJSONFormat is the template equivalent of standardFields.
const DefaultJSONFormat = "{timestamp} {level} {logger} {message} {caller}"

// JSONFormatter formats log entries as single-line JSON objects
type JSONFormatter struct {
	settings
	// fields are the standard fields to emit, in order.
	fields []string
}

// NewJSONFormatter creates a new JSON formatter. When cfg.MessageFormat
// is set, only the standard fields it references are emitted, in template
// order; extras are always emitted after them. A template that references
// no standard field at all gets the default layout.
func NewJSONFormatter(cfg Config) (*JSONFormatter, error) {
	s, err := newSettings(cfg, DefaultJSONFormat)
	if err != nil {
		return nil, err
	}

	f := &JSONFormatter{settings: s}
	for _, name := range s.tpl.fields {
		if name == FieldCaller && cfg.MessageFormat == "" && !cfg.IncludeCaller {
			continue
		}
		if isStandardField(name) {
			f.fields = append(f.fields, name)
		}
	}
	if len(f.fields) == 0 {
		for _, name := range standardFields {
			if name == FieldCaller && !cfg.IncludeCaller {
				continue
			}
			f.fields = append(f.fields, name)
		}
	}
	return f, nil
}

func isStandardField(name string) bool {
	for _, s := range standardFields {
		if s == name {
			return true
		}
	}
	return false
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(entry, f.FormatEntry), nil
}

// FormatTo formats an entry as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return formatTo(entry, w, f.FormatEntry)
}

// FormatEntry formats an entry as JSON into the given buffer (implements BufferFormatter).
// Each output key is written at most once: standard fields win over
// extras, and the first extra wins over later ones with the same key.
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	var seenArr [16]string
	seen := seenArr[:0]
	claim := func(key string) bool {
		for _, k := range seen {
			if k == key {
				return false
			}
		}
		seen = append(seen, key)
		return true
	}

	buf.WriteByte('{')
	first := true
	writeKey := func(key string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteByte('"')
		appendJSONString(buf, key)
		buf.WriteString(`":`)
	}

	for _, name := range f.fields {
		switch name {
		case FieldLogger:
			if entry.LoggerName == "" {
				continue
			}
		case FieldCaller:
			if !entry.Caller.Defined {
				continue
			}
		}

		key := f.outputKey(name)
		if !claim(key) {
			continue
		}
		writeKey(key)

		switch name {
		case FieldTimestamp:
			buf.WriteByte('"')
			buf.Write(f.renderer.AppendFormat(buf.AvailableBuffer(), entry.Time))
			buf.WriteByte('"')
		case FieldLevel:
			buf.WriteByte('"')
			buf.WriteString(entry.Level.String())
			buf.WriteByte('"')
		case FieldLogger:
			buf.WriteByte('"')
			appendJSONString(buf, entry.LoggerName)
			buf.WriteByte('"')
		case FieldMessage:
			buf.WriteByte('"')
			appendJSONString(buf, entry.Text())
			buf.WriteByte('"')
		case FieldCaller:
			buf.WriteString(`{"file":"`)
			appendJSONString(buf, entry.Caller.ShortFile)
			buf.WriteString(`","line":`)
			buf.WriteString(strconv.Itoa(entry.Caller.Line))
			if entry.Caller.Function != "" {
				buf.WriteString(`,"function":"`)
				appendJSONString(buf, entry.Caller.Function)
				buf.WriteByte('"')
			}
			buf.WriteByte('}')
		}
	}

	for _, field := range entry.Fields {
		key := f.outputKey(field.Key)
		if !claim(key) {
			continue
		}
		writeKey(key)
		f.appendJSONFieldValue(buf, field)
	}

	buf.WriteString("}\n")
}
