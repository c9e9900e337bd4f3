// Package benchmark compares preciselog with zap, slog, logrus and
// zerolog, both stock and wired through the bridges. It contains only
// benchmarks:
//
//	go test -bench=Competitive -benchmem ./benchmark
package benchmark
