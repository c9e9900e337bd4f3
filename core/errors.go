package core

import "errors"

var (
	// ErrInvalidConfiguration is returned when a renderer or formatter is
	// constructed with settings it cannot honour. It is only ever returned
	// at construction time, never while formatting.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnencodableValue describes a field value that has no JSON
	// representation. Formatters recover from it by emitting the value's
	// string form instead.
	ErrUnencodableValue = errors.New("unencodable value")
)
