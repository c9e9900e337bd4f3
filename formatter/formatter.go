package formatter

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/timestamp"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Canonical field names. They double as template placeholders and as
// keys of Config.FieldRenames.
const (
	FieldTimestamp = "timestamp"
	FieldLevel     = "level"
	FieldLogger    = "logger"
	FieldMessage   = "message"
	FieldCaller    = "caller"
	// FieldFields expands to the extras not referenced elsewhere in a text template.
	FieldFields = "fields"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds the formatter selected by cfg.Format.
func New(cfg Config) (Formatter, error) {
	switch cfg.Format {
	case "", FormatText:
		return NewTextFormatter(cfg)
	case FormatJSON:
		return NewJSONFormatter(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", core.ErrInvalidConfiguration, cfg.Format)
	}
}

// Must panics if err is non-nil and returns f otherwise.
func Must[F Formatter](f F, err error) F {
	if err != nil {
		panic(err)
	}
	return f
}

// settings is the validated, immutable state shared by both formatters.
type settings struct {
	renderer *timestamp.Renderer
	tpl      *template
	renames  map[string]string
}

func newSettings(cfg Config, defaultFormat string) (settings, error) {
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	r, err := timestamp.New(cfg.FracDigits, cfg.Timezone)
	if err != nil {
		return settings{}, err
	}

	format := cfg.MessageFormat
	if format == "" {
		format = defaultFormat
	}
	tpl, err := parseTemplate(format, cfg.StrictValidation)
	if err != nil {
		return settings{}, err
	}

	var renames map[string]string
	if len(cfg.FieldRenames) > 0 {
		renames = make(map[string]string, len(cfg.FieldRenames))
		for k, v := range cfg.FieldRenames {
			renames[k] = v
		}
	}

	return settings{
		renderer: r,
		tpl:      tpl,
		renames:  renames,
	}, nil
}

// Renderer returns the timestamp renderer used for the time field.
func (s settings) Renderer() *timestamp.Renderer {
	return s.renderer
}

func (s settings) outputKey(name string) string {
	if renamed, ok := s.renames[name]; ok {
		return renamed
	}
	return name
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// formatWith runs fn against a pooled buffer and returns a copy of the result.
func formatWith(entry *core.Entry, fn func(*core.Entry, *bytes.Buffer)) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	fn(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

// formatTo runs fn against a pooled buffer and writes the result to w in one call.
func formatTo(entry *core.Entry, w io.Writer, fn func(*core.Entry, *bytes.Buffer)) error {
	buf := getBuffer()

	fn(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}
