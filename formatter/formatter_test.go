package formatter

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/preciselog/core"
)

// newYear2023 is 2023-01-01T00:00:00.123456Z.
var newYear2023 = core.TimeFromEpoch(1672531200.123456)

func tokyoConfig() Config {
	cfg := DefaultConfig()
	cfg.Timezone = "Asia/Tokyo"
	return cfg
}

func TestTextFormatter_Basic(t *testing.T) {
	f, err := NewTextFormatter(tokyoConfig())
	require.NoError(t, err)

	entry := &core.Entry{
		Time:    newYear2023,
		Level:   core.InfoLevel,
		Message: "test message",
	}

	result, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01T09:00:00.123+09:00 [INFO] test message\n", string(result))
}

func TestTextFormatter_WithFields(t *testing.T) {
	f := Must(NewTextFormatter(DefaultConfig()))

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(result)
	if !strings.Contains(output, " key1=value1 key2=42\n") {
		t.Errorf("Expected 'key1=value1 key2=42' in output, got: %s", output)
	}
}

func TestTextFormatter_WithCaller(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeCaller = true
	f := Must(NewTextFormatter(cfg))

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Caller: core.CallerInfo{
			File:      "/path/to/file.go",
			ShortFile: "file.go",
			Line:      123,
			Function:  "main.main",
			Defined:   true,
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(result)
	if !strings.Contains(output, "[file.go:123] test") {
		t.Errorf("Expected caller info in output, got: %s", output)
	}
}

func TestTextFormatter_MessageFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		entry  core.Entry
		want   string
	}{
		{
			name:   "all standard placeholders",
			format: "{timestamp} - {level} - {logger} - {message}",
			entry:  core.Entry{Time: newYear2023, Level: core.WarnLevel, LoggerName: "app.db", Message: "slow"},
			want:   "2023-01-01T09:00:00.123+09:00 - WARN - app.db - slow\n",
		},
		{
			name:   "message arguments",
			format: "{level}: {message}",
			entry:  core.Entry{Level: core.ErrorLevel, Message: "%d retries left for %s", Args: []interface{}{3, "db"}},
			want:   "ERROR: 3 retries left for db\n",
		},
		{
			name:   "extra placeholder and remaining fields",
			format: "[{request_id}] {message}{fields}",
			entry: core.Entry{Message: "done", Fields: []core.Field{
				{Key: "request_id", Type: core.StringType, Str: "r-1"},
				{Key: "status", Type: core.IntType, Int64: 200},
			}},
			want: "[r-1] done status=200\n",
		},
		{
			name:   "missing extra renders empty",
			format: "[{user}] {message}",
			entry:  core.Entry{Message: "anon"},
			want:   "[] anon\n",
		},
		{
			name:   "escaped braces",
			format: "{{{level}}} {message}",
			entry:  core.Entry{Level: core.DebugLevel, Message: "x"},
			want:   "{DEBUG} x\n",
		},
		{
			name:   "time extras use the same renderer",
			format: "{message} at {at}",
			entry: core.Entry{Message: "due", Fields: []core.Field{
				{Key: "at", Type: core.TimeType, Int64: newYear2023.UnixNano()},
			}},
			want: "due at 2023-01-01T09:00:00.123+09:00\n",
		},
		{
			name:   "nested group",
			format: "{message}{fields}",
			entry: core.Entry{Message: "req", Fields: []core.Field{
				{Key: "http", Type: core.GroupType, Group: []core.Field{
					{Key: "method", Type: core.StringType, Str: "GET"},
					{Key: "status", Type: core.IntType, Int64: 404},
				}},
			}},
			want: "req http={method=GET status=404}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tokyoConfig()
			cfg.MessageFormat = tt.format
			f, err := NewTextFormatter(cfg)
			require.NoError(t, err)

			out, err := f.Format(&tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestFormatters_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative digits", Config{FracDigits: -1}},
		{"unknown timezone", Config{Timezone: "Not/AZone"}},
		{"unknown format", Config{Format: "xml"}},
		{"strict malformed template", Config{StrictValidation: true, MessageFormat: "{message"}},
		{"strict duplicate rename", Config{StrictValidation: true, FieldRenames: map[string]string{"level": "x", "message": "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTextFormatter(tt.cfg)
			assert.True(t, errors.Is(err, core.ErrInvalidConfiguration), "text: got %v", err)

			_, err = NewJSONFormatter(tt.cfg)
			assert.True(t, errors.Is(err, core.ErrInvalidConfiguration), "json: got %v", err)

			_, err = New(tt.cfg)
			assert.True(t, errors.Is(err, core.ErrInvalidConfiguration), "new: got %v", err)
		})
	}

	assert.Panics(t, func() { Must(NewTextFormatter(Config{FracDigits: -1})) })
}

func TestNew_SelectsFormat(t *testing.T) {
	f, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &TextFormatter{}, f)

	f, err = New(Config{Format: FormatJSON})
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)
}

func TestFormatters_ConfigIsCopied(t *testing.T) {
	cfg := tokyoConfig()
	cfg.FieldRenames = map[string]string{"message": "msg"}
	f := Must(NewJSONFormatter(cfg))

	cfg.FieldRenames["message"] = "changed"
	out, err := f.Format(&core.Entry{Time: newYear2023, Message: "m"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"msg":"m"`)
}

func TestFormatters_FormatToAndFormatEntryAgree(t *testing.T) {
	formatters := map[string]Formatter{
		"text": Must(NewTextFormatter(tokyoConfig())),
		"json": Must(NewJSONFormatter(tokyoConfig())),
	}
	entry := &core.Entry{Time: newYear2023, Level: core.InfoLevel, Message: "same",
		Fields: []core.Field{{Key: "k", Type: core.StringType, Str: "v"}}}

	for name, f := range formatters {
		t.Run(name, func(t *testing.T) {
			want, err := f.Format(entry)
			require.NoError(t, err)

			var w bytes.Buffer
			require.NoError(t, f.(WriterFormatter).FormatTo(entry, &w))
			assert.Equal(t, string(want), w.String())

			var b bytes.Buffer
			f.(BufferFormatter).FormatEntry(entry, &b)
			assert.Equal(t, string(want), b.String())
		})
	}
}

func TestFormatters_ConcurrentFormat(t *testing.T) {
	cfg := tokyoConfig()
	cfg.FracDigits = 9
	f := Must(NewJSONFormatter(cfg))
	entry := &core.Entry{Time: newYear2023, Level: core.InfoLevel, Message: "parallel"}

	want, err := f.Format(entry)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := f.Format(entry)
				if !assert.NoError(t, err) || !assert.Equal(t, want, got) {
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkTextFormatter(b *testing.B) {
	f := Must(NewTextFormatter(DefaultConfig()))
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := Must(NewJSONFormatter(DefaultConfig()))
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}
