// Package logger is the public API of preciselog. Most users only need
// to import this package and formatter.
//
// A Logger is immutable after construction: the fields, the level, the
// name and the handler are set once via the Builder and never modified.
// This makes Logger safe for concurrent use without any locking on the
// read path.
//
// The package initializes a default Logger (InfoLevel, text format with
// millisecond timestamps in the host's zone, stdout) in init(). The
// package-level functions Info, Error, Debugf, etc. delegate to it:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use New with a formatter.Config or the Builder:
//
//	log, err := logger.New(os.Stdout, cfg)
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithName("api").
//	    Build()
//
// Child loggers are created via With (extra fields) and Named (dotted
// logger name); both return a new Logger sharing the same handler.
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a single integer comparison.
package logger
