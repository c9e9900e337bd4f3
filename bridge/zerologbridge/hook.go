// Package zerologbridge stamps zerolog events with a precise timestamp.
//
// zerolog formats time through a single global TimeFieldFormat, which
// cannot express a fixed fractional width together with a ±HH:MM offset
// in a chosen zone. Hook writes the rendered string instead.
package zerologbridge

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/philipp01105/preciselog/timestamp"
)

// DefaultKey is the field name used by NewHook.
const DefaultKey = "timestamp"

// Hook adds a rendered timestamp field to every event it runs on.
type Hook struct {
	renderer *timestamp.Renderer
	key      string
	now      func() time.Time
}

var _ zerolog.Hook = Hook{}

// NewHook returns a Hook writing DefaultKey with r
func NewHook(r *timestamp.Renderer) Hook {
	return Hook{renderer: r, key: DefaultKey, now: time.Now}
}

// WithKey returns a copy of h writing to key
func (h Hook) WithKey(key string) Hook {
	h.key = key
	return h
}

// Run implements zerolog.Hook
func (h Hook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if e == nil {
		return
	}
	e.Str(h.key, h.renderer.Format(h.now()))
}

// New returns a zerolog.Logger writing to w with h attached and
// zerolog's own timestamp left off.
func New(w io.Writer, r *timestamp.Renderer) zerolog.Logger {
	return zerolog.New(w).Hook(NewHook(r))
}
