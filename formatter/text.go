package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/preciselog/core"
)

const (
	// DefaultTextFormat is the text layout used when Config.MessageFormat is empty
	DefaultTextFormat = "{timestamp} [{level}] {message}{fields}"
	// DefaultTextFormatWithCaller is used instead when IncludeCaller is set
	DefaultTextFormatWithCaller = "{timestamp} [{level}] [{caller}] {message}{fields}"
)

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	settings
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) (*TextFormatter, error) {
	def := DefaultTextFormat
	if cfg.IncludeCaller {
		def = DefaultTextFormatWithCaller
	}
	s, err := newSettings(cfg, def)
	if err != nil {
		return nil, err
	}
	return &TextFormatter{settings: s}, nil
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(entry, f.FormatEntry), nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return formatTo(entry, w, f.FormatEntry)
}

// FormatEntry writes the formatted entry into the given buffer
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	for _, seg := range f.tpl.segments {
		if seg.field == "" {
			buf.WriteString(seg.text)
			continue
		}

		switch seg.field {
		case FieldTimestamp:
			buf.Write(f.renderer.AppendFormat(buf.AvailableBuffer(), entry.Time))
		case FieldLevel:
			buf.WriteString(entry.Level.String())
		case FieldLogger:
			buf.WriteString(entry.LoggerName)
		case FieldMessage:
			buf.WriteString(entry.Text())
		case FieldCaller:
			if entry.Caller.Defined {
				buf.WriteString(entry.Caller.ShortFile)
				buf.WriteByte(':')
				buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
			}
		case FieldFields:
			for _, field := range entry.Fields {
				if f.tpl.references(field.Key) {
					continue
				}
				buf.WriteByte(' ')
				buf.WriteString(field.Key)
				buf.WriteByte('=')
				f.appendTextValue(buf, field)
			}
		default:
			for _, field := range entry.Fields {
				if field.Key == seg.field {
					f.appendTextValue(buf, field)
					break
				}
			}
		}
	}

	buf.WriteByte('\n')
}

// appendTextValue writes a field value, rendering times with the
// formatter's timestamp rules.
func (f *TextFormatter) appendTextValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.TimeType:
		buf.Write(f.renderer.AppendFormat(buf.AvailableBuffer(), time.Unix(0, field.Int64)))
	case core.GroupType:
		buf.WriteByte('{')
		for i, g := range field.Group {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(g.Key)
			buf.WriteByte('=')
			f.appendTextValue(buf, g)
		}
		buf.WriteByte('}')
	default:
		buf.WriteString(field.StringValue())
	}
}
