// Package monitoring carries the diagnostic channel for batch processing.
// Recoverable per-file failures are reported here rather than propagated,
// so one bad recording never aborts a run.
package monitoring

import "log"

// Logf is the package-level progress logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Errorf is the package-level diagnostic logger for recoverable per-file
// failures. Kept separate from Logf so callers can mute progress output
// while still surfacing failures.
var Errorf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the progress logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetErrorLogger replaces the diagnostic logger. Passing nil will set a no-op logger.
func SetErrorLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Errorf = func(string, ...interface{}) {}
		return
	}
	Errorf = f
}
