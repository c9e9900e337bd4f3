// Package logrusbridge lets logrus render its entries with a
// preciselog formatter.
package logrusbridge

import (
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/formatter"
)

// Formatter implements logrus.Formatter on top of a formatter.Formatter.
// Entry data is emitted as extras sorted by key, since logrus keeps it in
// a map.
type Formatter struct {
	formatter formatter.Formatter
	// LoggerName is reported as the logger field of every entry.
	LoggerName string
}

var _ logrus.Formatter = (*Formatter)(nil)

// New wraps f for use with logrus.Logger.SetFormatter
func New(f formatter.Formatter) *Formatter {
	return &Formatter{formatter: f}
}

// NewFromConfig builds the wrapped formatter from cfg
func NewFromConfig(cfg formatter.Config) (*Formatter, error) {
	f, err := formatter.New(cfg)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// Format renders a logrus entry
func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = e.Time
	entry.Level = levelToCore(e.Level)
	entry.LoggerName = f.LoggerName
	entry.Message = e.Message
	if e.Caller != nil {
		entry.Caller = core.CallerInfo{
			File:      e.Caller.File,
			ShortFile: filepath.Base(e.Caller.File),
			Line:      e.Caller.Line,
			Function:  e.Caller.Function,
			Defined:   true,
		}
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry.Fields = append(entry.Fields, core.FieldOf(k, e.Data[k]))
	}

	return f.formatter.Format(entry)
}

func levelToCore(l logrus.Level) core.Level {
	switch l {
	case logrus.PanicLevel:
		return core.PanicLevel
	case logrus.FatalLevel:
		return core.FatalLevel
	case logrus.ErrorLevel:
		return core.ErrorLevel
	case logrus.WarnLevel:
		return core.WarnLevel
	case logrus.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}
