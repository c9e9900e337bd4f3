// Package formatter defines how log entries are serialized into bytes.
//
// It exposes the Formatter interface, which returns a []byte, and two
// optional extensions: WriterFormatter writes directly to an io.Writer
// and BufferFormatter appends into a caller-owned buffer. Handlers
// check for them at construction time and prefer them when available.
//
// Two formatters are provided. TextFormatter lays out a record through
// a message template such as
//
//	{timestamp} [{level}] {logger}: {message}{fields}
//
// and JSONFormatter writes one compact JSON object per record, with
// optional renaming of any field. Both render the record's time through
// a timestamp.Renderer they own, so the precision and timezone rules
// live in exactly one place.
//
// Formatters are immutable once built and safe for concurrent use.
// Construction validates the whole Config and fails with
// core.ErrInvalidConfiguration; formatting itself never fails on a
// well-formed entry. Values that have no JSON form are written as
// strings rather than dropping the record.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
