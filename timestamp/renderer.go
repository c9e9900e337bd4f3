package timestamp

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on host zoneinfo files

	"github.com/philipp01105/preciselog/core"
)

// MaxPrecision is the number of fractional digits backed by real data.
// Digits requested beyond it are zero-filled.
const MaxPrecision = 6

// DefaultFracDigits is the fractional precision used when none is configured.
const DefaultFracDigits = 3

// Renderer formats instants with a fixed fractional precision and timezone.
type Renderer struct {
	fracDigits int
	timezone   string
	loc        *time.Location // nil means host local time at format time
}

// New creates a Renderer. An empty timezone selects the host's local zone.
// Negative fracDigits and unknown timezone names fail with
// core.ErrInvalidConfiguration.
func New(fracDigits int, timezone string) (*Renderer, error) {
	if fracDigits < 0 {
		return nil, fmt.Errorf("%w: frac digits must be non-negative, got %d", core.ErrInvalidConfiguration, fracDigits)
	}
	r := &Renderer{fracDigits: fracDigits, timezone: timezone}
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timezone %q: %v", core.ErrInvalidConfiguration, timezone, err)
		}
		r.loc = loc
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(fracDigits int, timezone string) *Renderer {
	r, err := New(fracDigits, timezone)
	if err != nil {
		panic(err)
	}
	return r
}

// FracDigits returns the configured number of fractional digits.
func (r *Renderer) FracDigits() int { return r.fracDigits }

// Timezone returns the configured zone name, empty for host local time.
func (r *Renderer) Timezone() string { return r.timezone }

// Location returns the zone instants are converted into.
func (r *Renderer) Location() *time.Location {
	if r.loc == nil {
		return time.Local
	}
	return r.loc
}

// Render formats floating-point seconds since the Unix epoch.
func (r *Renderer) Render(epochSeconds float64) string {
	return r.Format(core.TimeFromEpoch(epochSeconds))
}

// Format formats t.
func (r *Renderer) Format(t time.Time) string {
	var buf [64]byte
	return string(r.AppendFormat(buf[:0], t))
}

// AppendFormat appends the rendering of t to dst and returns the extended slice.
func (r *Renderer) AppendFormat(dst []byte, t time.Time) []byte {
	t = t.In(r.Location())

	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	dst = appendPadded(dst, year, 4)
	dst = append(dst, '-')
	dst = appendPadded(dst, int(month), 2)
	dst = append(dst, '-')
	dst = appendPadded(dst, day, 2)
	dst = append(dst, 'T')
	dst = appendPadded(dst, hour, 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, minute, 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, sec, 2)

	if r.fracDigits > 0 {
		dst = append(dst, '.')
		dst = appendFraction(dst, t.Nanosecond()/1000, r.fracDigits)
	}

	_, offset := t.Zone()
	return appendOffset(dst, offset)
}

// appendFraction writes the leading digits of the 6-digit microsecond value,
// zero-filling any digits past MaxPrecision.
func appendFraction(dst []byte, micros, digits int) []byte {
	var us [MaxPrecision]byte
	for i := MaxPrecision - 1; i >= 0; i-- {
		us[i] = byte('0' + micros%10)
		micros /= 10
	}
	if digits <= MaxPrecision {
		return append(dst, us[:digits]...)
	}
	dst = append(dst, us[:]...)
	for i := MaxPrecision; i < digits; i++ {
		dst = append(dst, '0')
	}
	return dst
}

// appendOffset writes ±HH:MM. Seconds in historic offsets are dropped.
func appendOffset(dst []byte, offset int) []byte {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	dst = append(dst, sign)
	dst = appendPadded(dst, offset/3600, 2)
	dst = append(dst, ':')
	return appendPadded(dst, offset%3600/60, 2)
}

func appendPadded(dst []byte, v, width int) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	var b [20]byte
	i := len(b)
	for v >= 10 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	i--
	b[i] = byte('0' + v)
	for n := len(b) - i; n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, b[i:]...)
}
