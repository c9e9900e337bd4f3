// Package handler provides the Handler interface and the minimal call
// sites that hand log entries to a formatter.
//
// Built-in handlers:
//
//   - ConsoleHandler formats each entry synchronously and writes it to
//     any io.Writer (default: stdout) in a single Write call.
//   - MultiHandler fans out a single entry to multiple child handlers and
//     reports every child error.
//   - SlogHandler adapts a Handler to log/slog.Handler, so slog records
//     are rendered by this module's formatters.
//
// Handlers never buffer or retry; transport and rotation belong to the
// io.Writer the caller supplies.
package handler
