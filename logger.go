package pdf2zh

import "log"

// Logger is the minimal logging capability the engine needs: debug-level
// tracing for the dispatcher's retry loop (4.3). The teacher has no
// structured logger of its own (it shells out to the standard log
// package plus ANSI-colored status lines for the CLI), so the engine
// only requires this much rather than inventing a logging framework.
type Logger interface {
	Debugf(format string, args ...any)
}

// defaultLogger backs Logger with the standard library's log package.
type defaultLogger struct{}

func (defaultLogger) Debugf(format string, args ...any) {
	log.Printf("debug: "+format, args...)
}

// NopLogger discards everything. Useful in tests that don't want retry
// noise on stderr.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
