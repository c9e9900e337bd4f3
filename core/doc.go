// Package core defines the shared types used across preciselog.
//
// It provides the Level type for severity, the Entry type that
// represents a single log record, and the Field type for structured
// key-value pairs attached to a record.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once the handler has consumed
// it. Formatters treat an Entry as read-only.
//
// Field is a tagged value. Common types (int, bool, float, time) are
// stored in fixed-size numeric slots; nested structures use GroupType
// and pre-encoded JSON uses RawJSONType, so a record can be serialized
// without reflection. The Any slot exists as a fallback for arbitrary
// Go values.
package core
