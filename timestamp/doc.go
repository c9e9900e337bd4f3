// Package timestamp renders instants as ISO8601/RFC3339 strings with a
// fixed number of fractional-second digits and an explicit ±HH:MM offset.
//
//	r, err := timestamp.New(3, "Asia/Tokyo")
//	r.Render(1672531200.123456) // "2023-01-01T09:00:00.123+09:00"
//
// The fraction is taken from the microsecond component of the instant
// and truncated, never rounded. Digits beyond the sixth are always
// zero: the renderer does not pretend to have sub-microsecond precision.
// A zero offset is written as +00:00, never Z.
//
// A Renderer is immutable. The timezone is resolved once in New, so a
// single Renderer can be shared by any number of goroutines.
package timestamp
