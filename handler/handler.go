package handler

import (
	"github.com/philipp01105/preciselog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry may be recycled once Handle returns.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}
