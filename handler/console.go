package handler

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/formatter"
)

// ConsoleHandler writes formatted entries to an io.Writer
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex // protects buf and writer
	buf             bytes.Buffer
	closed          bool
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter with formatter.DefaultConfig)
	Formatter formatter.Formatter
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.Must(formatter.NewTextFormatter(formatter.DefaultConfig()))
	}

	h := &ConsoleHandler{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
	}
	// Cache BufferFormatter to format into the handler-owned buffer
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.buf.Grow(256)
	}
	return h
}

// Handle formats the entry and writes it in one Write call.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.bufferFormatter != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return ErrClosed
		}
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err := h.writer.Write(h.buf.Bytes())
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	_, err = h.writer.Write(data)
	return err
}

// Formatter returns the formatter used by the handler
func (h *ConsoleHandler) Formatter() formatter.Formatter {
	return h.formatter
}

// Close marks the handler closed. The writer is left open; it belongs to the caller.
func (h *ConsoleHandler) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}
