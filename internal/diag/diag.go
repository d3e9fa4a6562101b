// Package diag provides the module's diagnostic logging. It wraps the
// standard library's log package, matching every example in this corpus
// rather than reaching for a third-party structured logger: nothing in the
// pack commits to one, so plain log.Printf-style output is the idiom to
// follow here.
package diag

import (
	"log"
	"sync"
)

// Logger rate-limits repeated diagnostics so a byte stream that keeps
// re-triggering the same malformed-input warning cannot flood output.
// Messages are counted per format string: calls that share a format share
// one count, whatever their arguments.
type Logger struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
}

// DefaultRepeatLimit is how many times a message with the same format is
// logged normally; the next occurrence is logged once more with a
// "further occurrences suppressed" note, and later ones are dropped.
const DefaultRepeatLimit = 5

// New creates a Logger with the default repeat limit.
func New() *Logger {
	return &Logger{counts: make(map[string]int), limit: DefaultRepeatLimit}
}

// Malformed logs a diagnostic about malformed input that was absorbed
// rather than rejected. Malformed input is never an error: it is always
// logged and ignored, never returned up the call stack.
func (l *Logger) Malformed(format string, args ...interface{}) {
	l.logRateLimited("malformed: "+format, args...)
}

// Ignored logs a diagnostic about a recognized but unsupported sequence
// (an SGR code VT102 hardware never implemented, a private mode it never
// wires up, and so on).
func (l *Logger) Ignored(format string, args ...interface{}) {
	l.logRateLimited("ignored: "+format, args...)
}

func (l *Logger) logRateLimited(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[format]++
	count := l.counts[format]
	if count > l.limit {
		if count == l.limit+1 {
			log.Printf(format+" (further occurrences suppressed)", args...)
		}
		return
	}
	log.Printf(format, args...)
}
