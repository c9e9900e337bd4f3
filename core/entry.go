package core

import (
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry represents a single log record with all its metadata.
// Formatters must not modify an Entry.
type Entry struct {
	Time       time.Time
	Level      Level
	LoggerName string
	// Message is used as a fmt format string when Args is non-empty.
	Message string
	Args    []interface{}
	Fields  []Field
	Caller  CallerInfo
}

// Text returns the rendered message, applying Args to Message when present.
func (e *Entry) Text() string {
	if len(e.Args) == 0 {
		return e.Message
	}
	return fmt.Sprintf(e.Message, e.Args...)
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// TimeFromEpoch converts floating-point seconds since the Unix epoch into
// a time.Time. The sub-second part is rounded to the nearest microsecond,
// which is the finest resolution a float64 epoch reliably carries.
func TimeFromEpoch(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	us := math.RoundToEven(frac * 1e6)
	return time.Unix(int64(whole), int64(us)*int64(time.Microsecond))
}

// EpochSeconds returns t as floating-point seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.LoggerName = ""
	e.Args = nil
	e.Caller = CallerInfo{}
	entryPool.Put(e)
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
